// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/petitechose/ms/lib/process"
)

// scriptedRunner returns fixed output/error and records invocations.
type scriptedRunner struct {
	calls  []string
	output string
	err    error
}

func (r *scriptedRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return r.output, r.err
}

func newTestClient(runner process.Runner) *Client {
	client := NewClientWithRunner("/work", runner)
	client.lookPath = func(string) (string, error) { return "/usr/bin/gh", nil }
	return client
}

func TestAuthenticated(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{}
	client := newTestClient(runner)

	if err := client.Authenticated(context.Background()); err != nil {
		t.Fatalf("Authenticated(): %v", err)
	}
	if len(runner.calls) != 1 || runner.calls[0] != "gh auth status" {
		t.Errorf("calls = %v, want [gh auth status]", runner.calls)
	}
}

func TestAuthenticated_ToolMissing(t *testing.T) {
	t.Parallel()

	client := newTestClient(&scriptedRunner{})
	client.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	err := client.Authenticated(context.Background())
	var missing *ToolMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *ToolMissingError", err)
	}
	if !IsToolingError(err) {
		t.Error("IsToolingError() = false, want true")
	}
}

func TestAuthenticated_NotLoggedIn(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{err: &process.ExecError{
		Name: "gh", ExitCode: 1, Stderr: "You are not logged into any GitHub hosts.",
	}}
	client := newTestClient(runner)

	err := client.Authenticated(context.Background())
	var unauthenticated *NotAuthenticatedError
	if !errors.As(err, &unauthenticated) {
		t.Fatalf("error = %v, want *NotAuthenticatedError", err)
	}
	if !IsToolingError(err) {
		t.Error("IsToolingError() = false, want true")
	}
}

func TestListOrgRepos(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{output: `[
		{"name": "bridge", "url": "https://x/bridge", "isArchived": false,
		 "defaultBranchRef": {"name": "main"}},
		{"name": "old-tool", "url": "https://x/old-tool", "isArchived": true,
		 "defaultBranchRef": {"name": "master"}},
		{"name": "empty-repo", "url": "https://x/empty-repo", "isArchived": false,
		 "defaultBranchRef": null}
	]`}
	client := newTestClient(runner)

	repos, err := client.ListOrgRepos(context.Background(), "open-control", 200)
	if err != nil {
		t.Fatalf("ListOrgRepos(): %v", err)
	}
	if len(repos) != 3 {
		t.Fatalf("len(repos) = %d, want 3", len(repos))
	}

	first := repos[0]
	if first.Org != "open-control" || first.Name != "bridge" || first.URL != "https://x/bridge" {
		t.Errorf("repos[0] = %+v", first)
	}
	if first.DefaultBranch != "main" || first.Archived {
		t.Errorf("repos[0] = %+v, want default branch main, not archived", first)
	}
	if !repos[1].Archived {
		t.Error("repos[1].Archived = false, want true")
	}
	if repos[2].DefaultBranch != "" {
		t.Errorf("repos[2].DefaultBranch = %q, want \"\" for null ref", repos[2].DefaultBranch)
	}

	want := "gh repo list open-control --limit 200 --json name,isArchived,defaultBranchRef,url"
	if len(runner.calls) != 1 || runner.calls[0] != want {
		t.Errorf("calls = %v, want [%s]", runner.calls, want)
	}
}

func TestListOrgRepos_MalformedEntriesSkipped(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{output: `[
		{"name": "good", "url": "https://x/good"},
		{"name": 42, "url": "https://x/bad-name"},
		{"name": "no-url"},
		{"name": "", "url": "https://x/empty-name"},
		"not-an-object"
	]`}
	client := newTestClient(runner)

	repos, err := client.ListOrgRepos(context.Background(), "org", 10)
	if err != nil {
		t.Fatalf("ListOrgRepos(): %v", err)
	}
	if len(repos) != 1 || repos[0].Name != "good" {
		t.Errorf("repos = %+v, want only the well-formed entry", repos)
	}
}

func TestListOrgRepos_InvalidJSON(t *testing.T) {
	t.Parallel()

	client := newTestClient(&scriptedRunner{output: "gh: something went sideways"})
	if _, err := client.ListOrgRepos(context.Background(), "org", 10); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestListOrgRepos_NonArrayRoot(t *testing.T) {
	t.Parallel()

	client := newTestClient(&scriptedRunner{output: `{"name": "solo"}`})
	if _, err := client.ListOrgRepos(context.Background(), "org", 10); err == nil {
		t.Fatal("expected error for non-array JSON root")
	}
}

func TestListOrgRepos_CommandFailure(t *testing.T) {
	t.Parallel()

	runner := &scriptedRunner{err: &process.ExecError{Name: "gh", ExitCode: 1, Stderr: "HTTP 404"}}
	client := newTestClient(runner)

	if _, err := client.ListOrgRepos(context.Background(), "gone-org", 10); err == nil {
		t.Fatal("expected error for failed gh invocation")
	}
}
