// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/petitechose/ms/lib/process"
)

// RepoRef identifies one remote repository as reported by the org
// catalog. DefaultBranch is "" when the repository has no default
// branch (empty repository). RepoRefs are recomputed on every sync
// pass and never persisted.
type RepoRef struct {
	Org           string
	Name          string
	URL           string
	DefaultBranch string
	Archived      bool
}

// Client runs gh commands from a fixed working directory.
type Client struct {
	dir      string
	runner   process.Runner
	lookPath func(string) (string, error)
}

// NewClient returns a Client that runs gh in dir with the real
// process runner.
func NewClient(dir string) *Client {
	return NewClientWithRunner(dir, process.ExecRunner{})
}

// NewClientWithRunner returns a Client using the given runner. Tests
// use this to script gh behavior.
func NewClientWithRunner(dir string, runner process.Runner) *Client {
	return &Client{dir: dir, runner: runner, lookPath: exec.LookPath}
}

// Authenticated verifies that gh is installed and logged in. Returns
// a [ToolMissingError] or [NotAuthenticatedError]; both are terminal
// for a sync pass.
func (c *Client) Authenticated(ctx context.Context) error {
	if _, err := c.lookPath("gh"); err != nil {
		return &ToolMissingError{Tool: "gh"}
	}

	if _, err := c.runner.Run(ctx, c.dir, "gh", "auth", "status"); err != nil {
		var execError *process.ExecError
		if errors.As(err, &execError) {
			return &NotAuthenticatedError{Stderr: execError.Stderr}
		}
		return fmt.Errorf("gh auth status: %w", err)
	}
	return nil
}

// ListOrgRepos returns up to limit repositories for org. The gh JSON
// response is validated defensively: a non-array root or unparseable
// payload fails the whole query, but individual entries with a
// missing or non-string name or URL are skipped silently.
func (c *Client) ListOrgRepos(ctx context.Context, org string, limit int) ([]RepoRef, error) {
	output, err := c.runner.Run(ctx, c.dir, "gh",
		"repo", "list", org,
		"--limit", strconv.Itoa(limit),
		"--json", "name,isArchived,defaultBranchRef,url",
	)
	if err != nil {
		return nil, fmt.Errorf("gh repo list %s: %w", org, err)
	}

	var raw any
	if err := json.Unmarshal([]byte(output), &raw); err != nil {
		return nil, fmt.Errorf("gh repo list %s: invalid JSON: %w", org, err)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("gh repo list %s: unexpected JSON root (want array)", org)
	}

	var repos []RepoRef
	for _, item := range items {
		object, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, ok := object["name"].(string)
		if !ok || name == "" {
			continue
		}
		url, ok := object["url"].(string)
		if !ok || url == "" {
			continue
		}

		archived, _ := object["isArchived"].(bool)

		defaultBranch := ""
		if ref, ok := object["defaultBranchRef"].(map[string]any); ok {
			if refName, ok := ref["name"].(string); ok {
				defaultBranch = refName
			}
		}

		repos = append(repos, RepoRef{
			Org:           org,
			Name:          name,
			URL:           url,
			DefaultBranch: defaultBranch,
			Archived:      archived,
		})
	}

	return repos, nil
}
