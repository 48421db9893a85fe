// Package main removes build and test artefacts.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	for _, dir := range []string{"bin", "dist"} {
		if err := os.RemoveAll(dir); err != nil {
			fmt.Printf("❌ Failed to remove dir %s: %v\n", dir, err)
			continue
		}
		fmt.Printf("✅ Removed dir %s\n", dir)
	}

	for _, pattern := range []string{"coverage*", "*.out", "*.test"} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			fmt.Printf("❌ Failed to glob pattern %s: %v\n", pattern, err)
			continue
		}
		for _, match := range matches {
			if err := os.Remove(match); err != nil {
				fmt.Printf("❌ Failed to remove %s: %v\n", match, err)
			} else {
				fmt.Printf("✅ Removed %s\n", match)
			}
		}
	}
}
