// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package fleet

import (
	"context"
	"log/slog"

	"github.com/petitechose/ms/lib/git"
	"github.com/petitechose/ms/lib/process"
	"github.com/petitechose/ms/lib/workspace"
)

// RepoStatus is the status of one workspace repository. Err is set
// when the status query itself failed; such repositories are reported
// alongside the successful ones, never dropped.
type RepoStatus struct {
	Name   string
	Path   string
	Status git.Status
	Err    error
}

// HasChanges reports whether the repository needs attention for its
// content: a dirty tree or divergence from upstream.
func (r RepoStatus) HasChanges() bool {
	if r.Err != nil {
		return false
	}
	return !r.Status.IsClean() || r.Status.HasDivergence()
}

// NeedsAttention reports whether the repository belongs in the
// "pending" partition: changed, diverged, or unreadable.
func (r RepoStatus) NeedsAttention() bool {
	return r.Err != nil || r.HasChanges()
}

// Reporter aggregates git status across every repository physically
// present in the workspace.
type Reporter struct {
	workspace *workspace.Workspace
	runner    process.Runner
	logger    *slog.Logger
}

// NewReporter wires a reporter for the given workspace.
func NewReporter(ws *workspace.Workspace, runner process.Runner, logger *slog.Logger) *Reporter {
	return &Reporter{workspace: ws, runner: runner, logger: logger}
}

// Collect discovers repositories by filesystem scan and queries each
// one's status. When fetch is set, remotes are fetched first so
// ahead/behind counts are current; fetch failures are logged and
// ignored — fetch is advisory, never a reason to drop a repository
// from the report.
func (r *Reporter) Collect(ctx context.Context, fetch bool) []RepoStatus {
	repos := r.workspace.DiscoverRepos()

	if fetch {
		for _, repo := range repos {
			if err := git.NewRepositoryWithRunner(repo.Path, r.runner).Fetch(ctx); err != nil {
				r.logger.Warn("fetch failed", "repo", repo.Name, "error", err)
			}
		}
	}

	statuses := make([]RepoStatus, 0, len(repos))
	for _, repo := range repos {
		status, err := git.NewRepositoryWithRunner(repo.Path, r.runner).Status(ctx)
		statuses = append(statuses, RepoStatus{
			Name:   repo.Name,
			Path:   repo.Path,
			Status: status,
			Err:    err,
		})
	}
	return statuses
}

// Partition splits statuses into the repositories needing attention
// and the clean ones, preserving discovery order within each group.
func Partition(statuses []RepoStatus) (pending, clean []RepoStatus) {
	for _, status := range statuses {
		if status.NeedsAttention() {
			pending = append(pending, status)
		} else {
			clean = append(clean, status)
		}
	}
	return pending, clean
}
