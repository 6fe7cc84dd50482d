// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package richtext

import (
	"regexp"
	"strings"
	"unicode"
)

// blankRun matches three or more consecutive newlines.
var blankRun = regexp.MustCompile(`\n{3,}`)

// Flatten renders a body as plain text. Absent bodies yield "", plain
// bodies are returned unchanged, and documents are flattened with
// FlattenDocument.
func Flatten(b Body) string {
	if b.plain {
		return b.text
	}
	return FlattenDocument(b.doc)
}

// FlattenDocument renders a document as plain text. Paragraphs and headings
// end with a newline, list items are prefixed with "- ", runs of blank lines
// collapse to one, and the result is trimmed.
func FlattenDocument(d *Document) string {
	if d == nil || len(d.Content) == 0 {
		return ""
	}
	out := blankRun.ReplaceAllString(flattenNodes(d.Content), "\n\n")
	return strings.TrimSpace(out)
}

func flattenNodes(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(flattenNode(n))
	}
	return b.String()
}

func flattenNode(n Node) string {
	switch n := n.(type) {
	case Text:
		return n.Value
	case HardBreak:
		return "\n"
	case Paragraph:
		return block(flattenNodes(n.Children))
	case Heading:
		return block(flattenNodes(n.Children))
	case ListItem:
		inner := flattenNodes(n.Children)
		if inner == "" {
			return ""
		}
		return "- " + strings.TrimRightFunc(inner, unicode.IsSpace) + "\n"
	case BulletList:
		return flattenNodes(n.Children)
	case OrderedList:
		return flattenNodes(n.Children)
	case Generic:
		return flattenNodes(n.Children)
	default:
		return ""
	}
}

// block terminates non-empty block text with a newline; empty blocks vanish.
func block(s string) string {
	if s == "" {
		return ""
	}
	return s + "\n"
}
