// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package fleet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/petitechose/ms/lib/git"
	"github.com/petitechose/ms/lib/github"
	"github.com/petitechose/ms/lib/process"
	"github.com/petitechose/ms/lib/workspace"
)

// Catalog lists an organization's repositories and reports whether
// the caller is authenticated. Implemented by [github.Client];
// tests substitute fakes.
type Catalog interface {
	Authenticated(ctx context.Context) error
	ListOrgRepos(ctx context.Context, org string, limit int) ([]github.RepoRef, error)
}

// Options tunes one sync pass.
type Options struct {
	// Limit caps repositories listed per org. Zero means the
	// workspace config value.
	Limit int

	// DryRun logs every decision but issues no mutating subprocess
	// calls and writes no lockfile.
	DryRun bool
}

// SyncError reports the hard failures of a pass: orgs whose catalog
// could not be listed and repositories that failed to clone. Soft
// skips (dirty trees, non-default branches, failed pulls) are not
// failures.
type SyncError struct {
	FailedOrgs  []string
	FailedRepos []string
}

func (e *SyncError) Error() string {
	var parts []string
	if len(e.FailedOrgs) > 0 {
		parts = append(parts, fmt.Sprintf("org listing failed: %s", strings.Join(e.FailedOrgs, ", ")))
	}
	if len(e.FailedRepos) > 0 {
		parts = append(parts, fmt.Sprintf("repositories failed: %s", strings.Join(e.FailedRepos, ", ")))
	}
	return "sync incomplete: " + strings.Join(parts, "; ")
}

// Synchronizer drives one workspace's fleet reconciliation. Not safe
// for concurrent use; a pass is single-threaded by design — the
// workload is tens of repositories, and sequential execution keeps
// subprocess output and failure attribution simple.
type Synchronizer struct {
	workspace *workspace.Workspace
	catalog   Catalog
	runner    process.Runner
	logger    *slog.Logger
}

// NewSynchronizer wires a synchronizer for the given workspace.
func NewSynchronizer(ws *workspace.Workspace, catalog Catalog, runner process.Runner, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{workspace: ws, catalog: catalog, runner: runner, logger: logger}
}

// SyncAll reconciles every org in the workspace config, in declared
// order, and writes the lockfile (unless dry-run). The returned
// entries are exactly what was (or would have been) written.
//
// The error is nil only if zero hard failures occurred. Tooling
// errors (gh missing, not authenticated) abort before any repository
// is touched; catalog errors fail that org only; clone errors fail
// that repository only.
func (s *Synchronizer) SyncAll(ctx context.Context, opts Options) ([]LockEntry, error) {
	if err := s.catalog.Authenticated(ctx); err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.workspace.Config.Limit
	}

	var entries []LockEntry
	var syncError SyncError

	for _, org := range s.workspace.Config.Orgs {
		repos, err := s.catalog.ListOrgRepos(ctx, org, limit)
		if err != nil {
			s.logger.Error("listing org repositories failed", "org", org, "error", err)
			syncError.FailedOrgs = append(syncError.FailedOrgs, org)
			continue
		}

		// The catalog's ordering is whatever gh returns, which is not
		// guaranteed stable. Sort by name so repeated passes produce
		// identical lockfiles.
		sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })

		for _, repo := range repos {
			if repo.Archived {
				s.logger.Debug("skip archived repository", "org", org, "repo", repo.Name)
				continue
			}

			dest := s.workspace.DestDir(org, repo.Name)
			entry, err := s.syncRepo(ctx, repo, dest, opts.DryRun)
			if err != nil {
				s.logger.Error("repository sync failed", "org", org, "repo", repo.Name, "error", err)
				syncError.FailedRepos = append(syncError.FailedRepos, org+"/"+repo.Name)
				continue
			}
			entries = append(entries, entry)
		}
	}

	if !opts.DryRun {
		if err := WriteLock(s.workspace.LockPath(), entries); err != nil {
			return entries, err
		}
	}

	if len(syncError.FailedOrgs) > 0 || len(syncError.FailedRepos) > 0 {
		return entries, &syncError
	}
	return entries, nil
}

// syncRepo evaluates one repository's state machine: clone when
// absent, fast-forward when clean and on the default branch, skip
// (with a recorded entry) otherwise. The returned error means a hard
// failure — the repository gets no lock entry at all.
func (s *Synchronizer) syncRepo(ctx context.Context, repo github.RepoRef, dest string, dryRun bool) (LockEntry, error) {
	entry := LockEntry{
		Org:           repo.Org,
		Name:          repo.Name,
		URL:           repo.URL,
		DefaultBranch: optional(repo.DefaultBranch),
	}

	if _, err := os.Stat(dest); errors.Is(err, os.ErrNotExist) {
		s.logger.Info("clone", "repo", repo.Org+"/"+repo.Name, "dest", dest, "dry_run", dryRun)
		if dryRun {
			return entry, nil
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return LockEntry{}, fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}
		if err := git.Clone(ctx, s.runner, s.workspace.Root, repo.URL, dest); err != nil {
			return LockEntry{}, fmt.Errorf("clone %s/%s: %w", repo.Org, repo.Name, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		// A directory squatting on the destination (or a clone that
		// was interrupted before .git materialized). The user owns
		// whatever this is; record it and move on.
		s.logger.Warn("skip: not a git repository", "dest", dest)
		return entry, nil
	}

	repoDir := git.NewRepositoryWithRunner(dest, s.runner)

	dirty, err := repoDir.IsDirty(ctx)
	if err != nil {
		// Status query failed; treat as not dirty and let the branch
		// check and pull surface whatever is actually wrong.
		dirty = false
	}
	if dirty {
		s.logger.Warn("skip dirty repository", "dest", dest)
		if !dryRun {
			entry.HeadSHA = optional(repoDir.HeadSHA(ctx))
		}
		return entry, nil
	}

	branch := repoDir.CurrentBranch(ctx)
	if repo.DefaultBranch != "" && branch != "" && branch != repo.DefaultBranch {
		s.logger.Warn("skip: not on default branch",
			"dest", dest, "branch", branch, "default", repo.DefaultBranch)
		if !dryRun {
			entry.HeadSHA = optional(repoDir.HeadSHA(ctx))
		}
		return entry, nil
	}

	s.logger.Info("update", "repo", repo.Org+"/"+repo.Name, "dry_run", dryRun)
	if !dryRun {
		if err := repoDir.FetchPrune(ctx); err != nil {
			s.logger.Warn("fetch failed", "dest", dest, "error", err)
		}
		if err := repoDir.PullFFOnly(ctx); err != nil {
			s.logger.Warn("pull --ff-only failed", "dest", dest, "error", err)
		}
		entry.HeadSHA = optional(repoDir.HeadSHA(ctx))
	}
	return entry, nil
}

// optional converts "" to nil for the nullable lockfile fields.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
