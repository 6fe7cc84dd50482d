// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package richtext turns Atlassian Document Format (ADF) trees into plain text
// and pulls labeled sections (Requirements, Acceptance Criteria) out of it.
//
// Everything here is pure: no I/O, no shared state, and no error returns.
// Unrecognized or malformed input degrades to empty text.
package richtext

import (
	"bytes"
	"encoding/json"
)

// Node is one node of a rich-text document tree. The set of variants is
// closed; node types this package does not model decode to Generic (when
// they carry content) or Unknown (when they do not).
type Node interface {
	richNode()
}

// Text is a run of literal text.
type Text struct {
	Value string
}

// HardBreak is an explicit line break inside a block.
type HardBreak struct{}

// Paragraph is a block of inline content.
type Paragraph struct {
	Children []Node
}

// Heading is a heading block of any level.
type Heading struct {
	Children []Node
}

// ListItem is one entry of a bullet or ordered list.
type ListItem struct {
	Children []Node
}

// BulletList holds ListItem children.
type BulletList struct {
	Children []Node
}

// OrderedList holds ListItem children.
type OrderedList struct {
	Children []Node
}

// Generic is any other node type that has nested content (panels, tables,
// blockquotes, ...). Its children are flattened transparently.
type Generic struct {
	Type     string
	Children []Node
}

// Unknown is a node with no content this package can render.
type Unknown struct {
	Type string
}

func (Text) richNode()        {}
func (HardBreak) richNode()   {}
func (Paragraph) richNode()   {}
func (Heading) richNode()     {}
func (ListItem) richNode()    {}
func (BulletList) richNode()  {}
func (OrderedList) richNode() {}
func (Generic) richNode()     {}
func (Unknown) richNode()     {}

// Document is the root of a rich-text tree.
type Document struct {
	Content []Node
}

// Body is a rich-text field as the tracker stores it: absent, a plain
// string (API v2 and some custom fields), or a Document (API v3).
type Body struct {
	doc   *Document
	text  string
	plain bool
}

// PlainBody wraps text that is already plain.
func PlainBody(s string) Body {
	return Body{text: s, plain: true}
}

// DocBody wraps a document. A nil document yields an absent body.
func DocBody(d *Document) Body {
	return Body{doc: d}
}

// IsZero reports whether the body is absent.
func (b Body) IsZero() bool {
	return !b.plain && b.doc == nil
}

// Document returns the wrapped document, or nil for plain and absent bodies.
func (b Body) Document() *Document {
	return b.doc
}

// UnmarshalJSON accepts null, a string, a document object, or a bare array
// of nodes. Any other JSON value decodes to an absent body. It only fails
// when data is not valid JSON at all.
func (b *Body) UnmarshalJSON(data []byte) error {
	*b = Body{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = PlainBody(s)
	case '{':
		var raw rawNode
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		b.doc = &Document{Content: decodeNodes(raw.Content)}
	case '[':
		b.doc = &Document{Content: decodeNodes(data)}
	}
	return nil
}

// MarshalJSON writes plain bodies as strings, absent bodies as null, and
// documents as their flattened text.
func (b Body) MarshalJSON() ([]byte, error) {
	if b.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(Flatten(b))
}

// ParseDocument decodes an ADF document. Malformed node shapes never fail;
// they decode to Unknown.
func ParseDocument(data []byte) (*Document, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return &Document{Content: decodeNodes(raw.Content)}, nil
}

// rawNode keeps every field loose so unexpected shapes cannot fail decoding.
type rawNode struct {
	Type    json.RawMessage `json:"type"`
	Text    json.RawMessage `json:"text"`
	Content json.RawMessage `json:"content"`
}

func decodeNodes(data json.RawMessage) []Node {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, decodeNode(item))
	}
	return nodes
}

func decodeNode(data json.RawMessage) Node {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object: arrays nest as transparent containers, anything
		// else has nothing to render.
		if children := decodeNodes(data); children != nil {
			return Generic{Children: children}
		}
		return Unknown{}
	}

	typ := stringField(raw.Type)
	hasContent := len(raw.Content) > 0 && !bytes.Equal(raw.Content, []byte("null"))
	children := decodeNodes(raw.Content)

	switch typ {
	case "text":
		return Text{Value: stringField(raw.Text)}
	case "hardBreak":
		return HardBreak{}
	case "paragraph":
		return Paragraph{Children: children}
	case "heading":
		return Heading{Children: children}
	case "listItem":
		return ListItem{Children: children}
	case "bulletList":
		return BulletList{Children: children}
	case "orderedList":
		return OrderedList{Children: children}
	}
	if hasContent {
		return Generic{Type: typ, Children: children}
	}
	return Unknown{Type: typ}
}

func stringField(data json.RawMessage) string {
	var s string
	if len(data) == 0 || json.Unmarshal(data, &s) != nil {
		return ""
	}
	return s
}
