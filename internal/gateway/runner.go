package gateway

import (
	"context"
	"os/exec"
)

// Runner is interface for executing external commands
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// realRunner implements Runner using os/exec
type realRunner struct{}

// NewRunner creates a new Runner
func NewRunner() Runner {
	return &realRunner{}
}

// Run executes the command and returns its stdout. On failure the stderr
// output travels inside the returned *exec.ExitError.
func (r *realRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}
