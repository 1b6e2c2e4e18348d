// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package fleet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LockEntry is the durable record of one repository considered during
// a sync pass. DefaultBranch is nil when the remote has no default
// branch; HeadSHA is nil when the pass was a dry run or the repository
// had no readable HEAD (not a git repository, unborn).
type LockEntry struct {
	Org           string  `json:"org"`
	Name          string  `json:"name"`
	URL           string  `json:"url"`
	DefaultBranch *string `json:"default_branch"`
	HeadSHA       *string `json:"head_sha"`
}

// WriteLock serializes entries as an indented JSON array to path,
// creating the parent directory if needed. The file is fully replaced
// — the lockfile is a snapshot of one pass, never a merge with
// history.
func WriteLock(path string, entries []LockEntry) error {
	if entries == nil {
		entries = []LockEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding lockfile: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing lockfile: %w", err)
	}
	return nil
}

// ReadLock parses a lockfile back into entries. The synchronizer never
// reads the lockfile — it is a record, not a cache — but tools and
// tests use this to validate a prior pass.
func ReadLock(path string) ([]LockEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []LockEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing lockfile %s: %w", path, err)
	}
	return entries, nil
}
