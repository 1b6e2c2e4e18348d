// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external tool and returns its captured stdout.
// dir is the working directory for the child process; name is the
// binary to invoke. Exactly one child process is spawned per call and
// the call blocks until it exits. There are no retries at this layer.
//
// A non-zero exit is returned as an [ExecError]. Any other error means
// the process could not be started at all (binary missing, bad dir).
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecError reports a child process that ran and exited non-zero.
// Stderr is captured and trimmed so callers can surface the tool's
// own diagnostic without re-running it.
type ExecError struct {
	Name     string
	Args     []string
	Dir      string
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	message := fmt.Sprintf("%s %s in %s: exit code %d",
		e.Name, strings.Join(e.Args, " "), e.Dir, e.ExitCode)
	if e.Stderr != "" {
		message += " (stderr: " + e.Stderr + ")"
	}
	return message
}

// ExecRunner runs commands with os/exec. The zero value is ready to use.
type ExecRunner struct{}

// Run executes name with args in dir, capturing stdout and stderr
// separately. Stdout is returned verbatim (no trimming — porcelain
// parsers care about exact lines); stderr travels inside the error.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, name, args...)
	command.Dir = dir
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return "", &ExecError{
				Name:     name,
				Args:     args,
				Dir:      dir,
				ExitCode: exitError.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return "", fmt.Errorf("starting %s: %w", name, err)
	}
	return stdout.String(), nil
}
