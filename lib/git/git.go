// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package git provides typed access to the git CLI for the workspace
// repositories. All commands target a specific working tree via the -C
// flag, which is automatically injected by all Repository methods.
// There is no default directory — callers must always specify which
// repository they mean.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/petitechose/ms/lib/process"
)

// Repository represents a git working tree at a specific directory.
type Repository struct {
	dir    string
	runner process.Runner
}

// NewRepository returns a Repository targeting the given directory,
// executing git with the real process runner.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir, runner: process.ExecRunner{}}
}

// NewRepositoryWithRunner returns a Repository that executes git
// through the given runner. Tests use this to script git behavior.
func NewRepositoryWithRunner(dir string, runner process.Runner) *Repository {
	return &Repository{dir: dir, runner: runner}
}

// Dir returns the repository directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Run executes a git command targeting this repository and returns
// stdout. The -C flag is prepended; stderr travels inside the error.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	fullArgs := append([]string{"-C", r.dir}, args...)
	return r.runner.Run(ctx, r.dir, "git", fullArgs...)
}

// StatusError reports a failed status query: the path is not a git
// repository, or git itself is broken or missing. Stderr carries the
// tool's own diagnostic.
type StatusError struct {
	Dir    string
	Stderr string
	Err    error
}

func (e *StatusError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git status in %s: %s", e.Dir, e.Stderr)
	}
	return fmt.Sprintf("git status in %s: %v", e.Dir, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Status queries the working tree with a porcelain status including
// branch-tracking info and parses the result.
func (r *Repository) Status(ctx context.Context) (Status, error) {
	output, err := r.Run(ctx, "status", "--porcelain", "-b")
	if err != nil {
		statusError := &StatusError{Dir: r.dir, Err: err}
		var execError *process.ExecError
		if errors.As(err, &execError) {
			statusError.Stderr = execError.Stderr
		}
		return Status{}, statusError
	}
	return ParseStatus(output), nil
}

// IsDirty reports whether the working tree has any pending change
// (any porcelain output, untracked files included).
func (r *Repository) IsDirty(ctx context.Context) (bool, error) {
	output, err := r.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}

// Fetch updates remote-tracking refs. Fetch is advisory — callers log
// a failure and move on, they never abort on it.
func (r *Repository) Fetch(ctx context.Context) error {
	_, err := r.Run(ctx, "fetch")
	return err
}

// FetchPrune fetches and removes remote-tracking refs that no longer
// exist on the remote.
func (r *Repository) FetchPrune(ctx context.Context) error {
	_, err := r.Run(ctx, "fetch", "--prune")
	return err
}

// PullFFOnly advances the current branch only if it can fast-forward.
// A diverged branch makes git exit non-zero, which surfaces here as an
// error; the caller decides whether that is fatal.
func (r *Repository) PullFFOnly(ctx context.Context) error {
	_, err := r.Run(ctx, "pull", "--ff-only")
	return err
}

// CurrentBranch returns the current branch name, or "" when HEAD is
// detached or the query fails (unborn repository).
func (r *Repository) CurrentBranch(ctx context.Context) string {
	output, err := r.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return ""
	}
	branch := strings.TrimSpace(output)
	if branch == "HEAD" {
		// rev-parse prints the literal string HEAD when detached.
		return ""
	}
	return branch
}

// HeadSHA returns the full HEAD commit hash, or "" when the repository
// is unborn or the query fails.
func (r *Repository) HeadSHA(ctx context.Context) string {
	output, err := r.Run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(output)
}

// Clone clones url into dest, running git in dir (the workspace root).
// The destination's parent must already exist.
func Clone(ctx context.Context, runner process.Runner, dir, url, dest string) error {
	_, err := runner.Run(ctx, dir, "git", "clone", url, dest)
	return err
}
