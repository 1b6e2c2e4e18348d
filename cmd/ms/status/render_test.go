// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package status

import (
	"errors"
	"strings"
	"testing"

	"github.com/petitechose/ms/lib/fleet"
	"github.com/petitechose/ms/lib/git"
)

func pendingRepo() fleet.RepoStatus {
	return fleet.RepoStatus{
		Name: "midi-studio/bridge",
		Path: "/ws/midi-studio/bridge",
		Status: git.Status{
			Branch: "main",
			Ahead:  2,
			Behind: 1,
			Entries: []git.StatusEntry{
				{XY: " M", Path: "engine.go"},
				{XY: "A ", Path: "patch.go"},
				{XY: "??", Path: "scratch.md"},
			},
			UntrackedCount: 1,
		},
	}
}

func cleanRepo(name string) fleet.RepoStatus {
	return fleet.RepoStatus{Name: name, Path: "/ws/" + name, Status: git.Status{Branch: "main"}}
}

func TestRenderSections(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(false, false)
	out := renderer.Render(
		[]fleet.RepoStatus{pendingRepo()},
		[]fleet.RepoStatus{cleanRepo("ms"), cleanRepo("open-control/display")},
	)

	for _, want := range []string{
		"PENDING",
		"midi-studio/bridge",
		"/ws/midi-studio/bridge",
		"main",
		"1M", "1A", "1?",
		"2^", "1v",
		"OK (2)",
		"open-control/display",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q\n\nFull output:\n%s", want, out)
		}
	}

	// Not detailed: file entries stay hidden.
	if strings.Contains(out, "engine.go") {
		t.Errorf("file entries rendered without --detailed:\n%s", out)
	}
}

func TestRenderDetailedShowsEntries(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer(false, true)
	out := renderer.Render([]fleet.RepoStatus{pendingRepo()}, nil)

	for _, want := range []string{
		"M engine.go",
		"A patch.go",
		"? scratch.md",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detailed output missing %q\n\nFull output:\n%s", want, out)
		}
	}
}

func TestRenderErroredRepo(t *testing.T) {
	t.Parallel()

	broken := fleet.RepoStatus{
		Name: "midi-studio/core",
		Path: "/ws/midi-studio/core",
		Err:  errors.New("git status in /ws/midi-studio/core: fatal: index corrupt"),
	}

	out := NewRenderer(false, false).Render([]fleet.RepoStatus{broken}, nil)
	if !strings.Contains(out, "midi-studio/core") || !strings.Contains(out, "index corrupt") {
		t.Errorf("errored repo not reported:\n%s", out)
	}
}

func TestRenderEmptyWorkspace(t *testing.T) {
	t.Parallel()

	out := NewRenderer(false, false).Render(nil, nil)
	if !strings.Contains(out, "No repos found") {
		t.Errorf("empty workspace output = %q", out)
	}
}

func TestEntryMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		xy   string
		want string
	}{
		{"??", "?"},
		{" M", "M"},
		{"M ", "M"},
		{"MM", "M"},
		{"A ", "A"},
		{" D", "D"},
		{"D ", "D"},
		{"R ", "R"},
		{" T", "T"},
	}
	for _, test := range tests {
		if got := entryMarker(test.xy); got != test.want {
			t.Errorf("entryMarker(%q) = %q, want %q", test.xy, got, test.want)
		}
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	out := PlainText(
		[]fleet.RepoStatus{pendingRepo()},
		[]fleet.RepoStatus{cleanRepo("ms"), cleanRepo("open-control/display")},
		false,
	)

	lines := strings.Split(out, "\n")
	if lines[0] != "PENDING" {
		t.Errorf("first line = %q, want PENDING", lines[0])
	}
	for _, want := range []string{
		"midi-studio/bridge",
		"/ws/midi-studio/bridge",
		"main  1M 1A 1?",
		"OK (2)",
		"  ms",
		"  open-control/display",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plain text missing %q\n\nFull output:\n%s", want, out)
		}
	}

	// No ANSI escapes in clipboard text.
	if strings.Contains(out, "\x1b[") {
		t.Error("plain text contains ANSI escapes")
	}
}

func TestPlainTextDetailed(t *testing.T) {
	t.Parallel()

	out := PlainText([]fleet.RepoStatus{pendingRepo()}, nil, true)
	for _, want := range []string{
		"  M engine.go",
		"  A patch.go",
		"  ? scratch.md",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("detailed plain text missing %q\n\nFull output:\n%s", want, out)
		}
	}
}

func TestPlainTextErroredRepo(t *testing.T) {
	t.Parallel()

	broken := fleet.RepoStatus{
		Name: "midi-studio/core",
		Err:  errors.New("fatal: index corrupt"),
	}
	out := PlainText([]fleet.RepoStatus{broken}, nil, false)
	if !strings.Contains(out, "  error: fatal: index corrupt") {
		t.Errorf("plain text missing error line:\n%s", out)
	}
}
