// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package fleet

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petitechose/ms/lib/git"
	"github.com/petitechose/ms/lib/process"
	"github.com/petitechose/ms/lib/workspace"
)

func gitStatusWithEntry() git.Status {
	return git.Status{
		Branch:  "main",
		Entries: []git.StatusEntry{{XY: " M", Path: "engine.go"}},
	}
}

// statusRunner serves scripted `git status --porcelain -b` output per
// repository directory and records fetches.
type statusRunner struct {
	porcelain map[string]string
	statusErr map[string]error
	fetches   []string
}

func (r *statusRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	rest := strings.Join(args[2:], " ")
	switch rest {
	case "fetch":
		r.fetches = append(r.fetches, args[1])
		return "", nil
	case "status --porcelain -b":
		if err := r.statusErr[args[1]]; err != nil {
			return "", err
		}
		return r.porcelain[args[1]], nil
	}
	return "", nil
}

func reportWorkspace(t *testing.T, names ...string) *workspace.Workspace {
	t.Helper()
	root := t.TempDir()
	for _, name := range names {
		if err := os.MkdirAll(filepath.Join(root, "midi-studio", name, ".git"), 0755); err != nil {
			t.Fatal(err)
		}
	}
	ws, err := workspace.Load(root)
	if err != nil {
		t.Fatal(err)
	}
	return ws
}

func TestCollectReportsEveryRepo(t *testing.T) {
	t.Parallel()

	ws := reportWorkspace(t, "bridge", "core")
	runner := &statusRunner{porcelain: map[string]string{
		filepath.Join(ws.MidiStudioDir(), "bridge"): "## main...origin/main [ahead 2]\n M engine.go\n?? scratch.md\n",
		filepath.Join(ws.MidiStudioDir(), "core"):   "## main...origin/main\n",
	}}

	statuses := NewReporter(ws, runner, discardLogger()).Collect(context.Background(), false)
	if len(statuses) != 2 {
		t.Fatalf("collected %d statuses, want 2", len(statuses))
	}
	if len(runner.fetches) != 0 {
		t.Errorf("fetches = %v, want none without the fetch flag", runner.fetches)
	}

	bridge, core := statuses[0], statuses[1]
	if bridge.Name != "midi-studio/bridge" || core.Name != "midi-studio/core" {
		t.Fatalf("names = %s, %s", bridge.Name, core.Name)
	}
	if !bridge.NeedsAttention() {
		t.Error("bridge has changes and divergence, should need attention")
	}
	if bridge.Status.Ahead != 2 || len(bridge.Status.Entries) != 2 {
		t.Errorf("bridge status = %+v", bridge.Status)
	}
	if core.NeedsAttention() {
		t.Error("core is clean and in sync, should not need attention")
	}
}

func TestCollectFetchFirst(t *testing.T) {
	t.Parallel()

	ws := reportWorkspace(t, "bridge")
	runner := &statusRunner{porcelain: map[string]string{}}

	NewReporter(ws, runner, discardLogger()).Collect(context.Background(), true)

	want := filepath.Join(ws.MidiStudioDir(), "bridge")
	if len(runner.fetches) != 1 || runner.fetches[0] != want {
		t.Errorf("fetches = %v, want [%s]", runner.fetches, want)
	}
}

func TestCollectKeepsUnreadableRepos(t *testing.T) {
	t.Parallel()

	ws := reportWorkspace(t, "bridge", "core")
	broken := filepath.Join(ws.MidiStudioDir(), "bridge")
	runner := &statusRunner{
		porcelain: map[string]string{
			filepath.Join(ws.MidiStudioDir(), "core"): "## main...origin/main\n",
		},
		statusErr: map[string]error{
			broken: &process.ExecError{Name: "git", ExitCode: 128, Stderr: "fatal: index corrupt"},
		},
	}

	statuses := NewReporter(ws, runner, discardLogger()).Collect(context.Background(), false)
	if len(statuses) != 2 {
		t.Fatalf("collected %d statuses, want 2 — errored repos stay in the report", len(statuses))
	}
	if statuses[0].Err == nil {
		t.Error("bridge should carry its status error")
	}
	if !statuses[0].NeedsAttention() {
		t.Error("an unreadable repo needs attention")
	}
	if statuses[0].HasChanges() {
		t.Error("HasChanges must be false when the status is unknown")
	}
}

func TestPartition(t *testing.T) {
	t.Parallel()

	statuses := []RepoStatus{
		{Name: "a"},
		{Name: "b", Status: gitStatusWithEntry()},
		{Name: "c", Err: os.ErrPermission},
		{Name: "d"},
	}

	pending, clean := Partition(statuses)
	if len(pending) != 2 || pending[0].Name != "b" || pending[1].Name != "c" {
		t.Errorf("pending = %+v", pending)
	}
	if len(clean) != 2 || clean[0].Name != "a" || clean[1].Name != "d" {
		t.Errorf("clean = %+v", clean)
	}
}
