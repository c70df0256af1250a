// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It includes a harness for running yoink commands, fixture management for
// descriptor trees and resources, and assertions over captured output.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauern/yoink/internal/cli"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output (status lines, summaries).
	Stdout string
	// Stderr contains the captured standard error (log records).
	Stderr string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the inferred exit code (0 for success, 1 for error).
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness provides a test harness for running E2E CLI tests.
// It manages environment isolation, temp directories, and output capture.
type Harness struct {
	t       *testing.T
	homeDir string
	env     map[string]string
}

// NewHarness creates a new E2E test harness.
// HOME and YOINK_HOME point into a fresh temp directory so "~" in descriptors
// and the config file both resolve inside the test.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	homeDir := t.TempDir()

	h := &Harness{
		t:       t,
		homeDir: homeDir,
		env:     make(map[string]string),
	}

	h.SetEnv("HOME", homeDir)
	h.SetEnv("YOINK_HOME", filepath.Join(homeDir, ".config", "yoink"))
	h.SetEnv("YOINK_OUTPUT_COLOR", "never")
	h.SetEnv("YOINK_OUTPUT_PROGRESS", "false")

	return h
}

// SetEnv sets an environment variable for CLI commands run through this harness.
// The environment will be restored after the test completes.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.env[key] = value
	h.t.Setenv(key, value)
}

// HomeDir returns the isolated home directory for this test harness.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// ConfigDir returns the directory holding the harness's config file.
func (h *Harness) ConfigDir() string {
	return h.env["YOINK_HOME"]
}

// Run executes a CLI command with the given arguments and captures the output.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()

	// Prepend "yoink" as the program name if not provided
	if len(args) == 0 || args[0] != "yoink" {
		args = append([]string{"yoink"}, args...)
	}

	stdout := h.capture(&os.Stdout)
	stderr := h.capture(&os.Stderr)

	cmdErr := cli.Run(context.Background(), args)

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
	}

	return &Result{
		Stdout:   stdout(),
		Stderr:   stderr(),
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}

// RunIn executes a CLI command with dir as the working directory.
func (h *Harness) RunIn(dir string, args ...string) *Result {
	h.t.Helper()
	h.t.Chdir(dir)
	return h.Run(args...)
}

// capture redirects *f to a pipe and returns a function that restores it and
// returns everything written in between.
func (h *Harness) capture(f **os.File) func() string {
	h.t.Helper()

	old := *f
	r, w, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create pipe: %v", err)
	}
	*f = w

	// Read concurrently so output larger than the pipe buffer cannot block the command.
	var buf bytes.Buffer
	var copyErr error
	copyDone := make(chan struct{})
	go func() {
		defer close(copyDone)
		_, copyErr = io.Copy(&buf, r)
	}()

	return func() string {
		h.t.Helper()
		if err := w.Close(); err != nil {
			h.t.Fatalf("failed to close pipe writer: %v", err)
		}
		*f = old

		<-copyDone
		if copyErr != nil {
			h.t.Fatalf("failed to read captured output: %v", copyErr)
		}
		_ = r.Close()
		return buf.String()
	}
}
