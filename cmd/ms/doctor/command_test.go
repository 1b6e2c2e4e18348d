// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/petitechose/ms/cmd/ms/cli/doctor"
	"github.com/petitechose/ms/lib/workspace"
)

func TestDirectoryChecks_MissingDirsAreFixable(t *testing.T) {
	t.Parallel()

	ws, err := workspace.Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	results := directoryChecks(ws)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, result := range results {
		if result.Status != doctor.StatusFail {
			t.Errorf("%s status = %q, want fail", result.Name, result.Status)
		}
		if !result.HasFix() {
			t.Errorf("%s should carry a fix", result.Name)
		}
	}

	outcome := doctor.ExecuteFixes(context.Background(), results, true)
	if outcome.FixedCount != 2 {
		t.Errorf("fixed count = %d, want 2", outcome.FixedCount)
	}
	for _, path := range []string{ws.MidiStudioDir(), ws.OpenControlDir()} {
		if info, err := os.Stat(path); err != nil || !info.IsDir() {
			t.Errorf("fix did not create %s", path)
		}
	}
}

func TestDirectoryChecks_ExistingDirsPass(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "midi-studio"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "open-control"), 0755); err != nil {
		t.Fatal(err)
	}
	ws, err := workspace.Load(root)
	if err != nil {
		t.Fatal(err)
	}

	for _, result := range directoryChecks(ws) {
		if result.Status != doctor.StatusPass {
			t.Errorf("%s status = %q, want pass", result.Name, result.Status)
		}
	}
}
