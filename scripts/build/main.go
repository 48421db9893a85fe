// Package main builds the fmtcommit binary into bin/ with the version stamped in.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

func main() {
	ctx := context.Background()

	name := "fmtcommit"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	outputPath := filepath.Join("bin", name)

	version := describe(ctx)
	ldflags := "-X github.com/andyballingall/fmtcommit/internal/app.Version=" + version

	if err := os.MkdirAll("bin", 0o755); err != nil {
		fmt.Printf("❌ Failed to create bin directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Building fmtcommit %s...\n", version)
	cmd := exec.CommandContext(ctx, "go", "build", "-ldflags", ldflags, "-o", outputPath, "./cmd/fmtcommit")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ Build failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Build complete: %s\n", outputPath)
}

// describe names the build after the nearest tag, or "dev" outside a checkout.
func describe(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}
	return strings.TrimSpace(string(out))
}
