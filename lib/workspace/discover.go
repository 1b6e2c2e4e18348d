// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"os"
	"path/filepath"
	"sort"
)

// RepoDir is one git repository physically present in the workspace.
// Name is the display name ("ms" for the root itself, otherwise
// "<container>/<dir>").
type RepoDir struct {
	Name string
	Path string
}

// DiscoverRepos scans the workspace for git repositories: the root
// itself when it carries a .git entry, then every immediate
// subdirectory of each container directory that does. Discovery is
// purely filesystem-based — the lockfile is a record, not an index.
// Container subdirectories are visited in sorted order.
func (w *Workspace) DiscoverRepos() []RepoDir {
	var repos []RepoDir

	if hasGitEntry(w.Root) {
		repos = append(repos, RepoDir{Name: "ms", Path: w.Root})
	}

	for _, container := range []string{w.MidiStudioDir(), w.OpenControlDir()} {
		entries, err := os.ReadDir(container)
		if err != nil {
			// Container dirs are optional until the first sync.
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(container, entry.Name())
			if hasGitEntry(path) {
				repos = append(repos, RepoDir{
					Name: filepath.Base(container) + "/" + entry.Name(),
					Path: path,
				})
			}
		}
	}

	return repos
}

// hasGitEntry reports whether dir contains a .git entry. Worktrees and
// submodules use a .git file rather than a directory, so any entry
// type counts.
func hasGitEntry(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
