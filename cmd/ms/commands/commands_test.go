// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"testing"
)

func TestRootTree(t *testing.T) {
	root := Root()

	want := map[string]bool{"sync": false, "status": false, "doctor": false, "version": false}
	for _, sub := range root.Subcommands {
		if _, ok := want[sub.Name]; ok {
			want[sub.Name] = true
		}
		if sub.Summary == "" {
			t.Errorf("subcommand %q has no summary", sub.Name)
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command tree missing %q", name)
		}
	}
}

func TestGlobals_Workspace(t *testing.T) {
	rest, root, showVersion, err := globals([]string{"--workspace", "/tmp/ws", "status", "-d"})
	if err != nil {
		t.Fatal(err)
	}
	if root != "/tmp/ws" {
		t.Errorf("root = %q, want /tmp/ws", root)
	}
	if showVersion {
		t.Error("showVersion should be false")
	}
	if len(rest) != 2 || rest[0] != "status" || rest[1] != "-d" {
		t.Errorf("rest = %v, want [status -d]", rest)
	}
}

func TestGlobals_WorkspaceEquals(t *testing.T) {
	rest, root, _, err := globals([]string{"--workspace=/tmp/ws", "sync"})
	if err != nil {
		t.Fatal(err)
	}
	if root != "/tmp/ws" {
		t.Errorf("root = %q, want /tmp/ws", root)
	}
	if len(rest) != 1 || rest[0] != "sync" {
		t.Errorf("rest = %v, want [sync]", rest)
	}
}

func TestGlobals_WorkspaceMissingValue(t *testing.T) {
	if _, _, _, err := globals([]string{"--workspace"}); err == nil {
		t.Error("expected error for --workspace without a path")
	}
}

func TestGlobals_Version(t *testing.T) {
	_, _, showVersion, err := globals([]string{"--version"})
	if err != nil {
		t.Fatal(err)
	}
	if !showVersion {
		t.Error("showVersion should be true")
	}
}
