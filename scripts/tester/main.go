// Package main runs the test suite, optionally with a coverage summary.
//
//	go run ./scripts/tester [--summary] [go test flags...]
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
)

const coverageFile = "coverage.out"

func main() {
	ctx := context.Background()

	args := os.Args[1:]
	summary := slices.Contains(args, "--summary")
	args = slices.DeleteFunc(args, func(a string) bool { return a == "--summary" })
	if len(args) == 0 {
		args = []string{"./..."}
	}

	testArgs := append([]string{"test", "-race"}, args...)
	if summary {
		testArgs = append(testArgs, "-coverprofile="+coverageFile, "-coverpkg=./internal/...")
	}
	run(ctx, "go", testArgs...)

	if summary {
		run(ctx, "go", "tool", "cover", "-func", coverageFile)
	}
}

func run(ctx context.Context, name string, args ...string) {
	cmd := exec.CommandContext(ctx, name, args...)
	// Git variables from a hook (for example when fmtcommit itself runs this
	// from pre-commit) would point the test repositories at this checkout.
	cmd.Env = slices.DeleteFunc(os.Environ(), func(kv string) bool {
		return strings.HasPrefix(kv, "GIT_")
	})
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Printf("❌ %s failed: %v\n", name, err)
		os.Exit(1)
	}
}
