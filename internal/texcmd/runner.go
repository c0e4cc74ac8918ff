// Package texcmd wraps external tool invocation behind a small interface so
// the pipeline stages can be tested without real subprocesses.
package texcmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Runner abstracts command execution to enable testing without real subprocesses.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

// Run executes name with args in dir (empty dir = current directory),
// capturing stdout and stderr. The context cancels or times out the process.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), stderr.String(), fmt.Errorf("running %s: %w", name, err)
	}
	return stdout.String(), stderr.String(), nil
}

// LookPath reports whether the named tool is available on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
