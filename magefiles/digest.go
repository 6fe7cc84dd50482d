//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Ticket builds the CLI and prints the digest of one issue.
func Ticket(key string) error {
	mg.Deps(Build)
	return sh.RunV(binaryPath(), "ticket", key)
}

// Snapshot builds the CLI and saves one issue to the local archive.
func Snapshot(key string) error {
	mg.Deps(Build)
	if err := sh.RunV(binaryPath(), "archive", "save", key); err != nil {
		return fmt.Errorf("archiving %s: %w", key, err)
	}
	return nil
}

func binaryPath() string {
	return "./" + binDir + "/" + binName
}
