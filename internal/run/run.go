// Package run executes external commands for swiget.
package run

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/skyforge/swiget/core"
)

// System runs commands via os/exec, blocking until completion.
type System struct{}

// Compile-time interface implementation check.
var _ core.Runner = System{}

// Run executes the command, discarding its output. Standard error is
// captured and folded into the returned error.
func (System) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return commandError(name, err, stderr.Bytes())
	}
	return nil
}

// Output executes the command and returns its standard output.
func (System) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, commandError(name, err, stderr.Bytes())
	}
	return stdout.Bytes(), nil
}

// Stream executes the command with extra environment entries appended to
// the current environment, writing its standard output to w.
func (System) Stream(ctx context.Context, w io.Writer, env []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = w
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return commandError(name, err, stderr.Bytes())
	}
	return nil
}

// commandError folds captured stderr into the exec error.
func commandError(name string, err error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return fmt.Errorf("%s: %w", name, err)
	}
	return fmt.Errorf("%s: %w: %s", name, err, msg)
}
