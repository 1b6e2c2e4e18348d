// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package sync implements `ms sync`: one reconciliation pass over the
// configured GitHub orgs, cloning missing repositories, fast-forwarding
// clean ones, and writing the lockfile snapshot.
package sync

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/petitechose/ms/cmd/ms/cli"
	"github.com/petitechose/ms/lib/fleet"
	"github.com/petitechose/ms/lib/github"
	"github.com/petitechose/ms/lib/process"
	"github.com/petitechose/ms/lib/workspace"
)

type syncParams struct {
	cli.JSONOutput
	limit  int
	dryRun bool
}

// New builds the `ms sync` command.
func New() *cli.Command {
	params := &syncParams{}

	return &cli.Command{
		Name:    "sync",
		Summary: "Synchronize workspace repositories",
		Description: "Reconcile the workspace against the GitHub org catalogs.\n\n" +
			"Missing repositories are cloned; clean repositories on their\n" +
			"default branch are fast-forwarded. Repositories with local\n" +
			"work (dirty tree, non-default branch) are left untouched and\n" +
			"recorded as-is. Every considered repository lands in the\n" +
			"lockfile snapshot.",
		Usage: "ms sync [flags]",
		Examples: []cli.Example{
			{Description: "Synchronize every org repository", Command: "ms sync"},
			{Description: "Preview without mutating anything", Command: "ms sync --dry-run"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("sync", pflag.ContinueOnError)
			flagSet.IntVar(&params.limit, "limit", 0, "max repositories listed per org (0: config value)")
			flagSet.BoolVar(&params.dryRun, "dry-run", false, "log decisions without cloning, pulling, or writing the lockfile")
			params.AddFlag(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			return runSync(params)
		},
	}
}

// runSync maps the synchronizer's error taxonomy onto exit codes:
// missing tooling, failed auth, and hard sync failures all exit 2
// (environment error); soft skips are success.
func runSync(params *syncParams) error {
	root, err := workspace.ResolveRoot()
	if err != nil {
		return err
	}
	ws, err := workspace.Load(root)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := cli.NewCommandLogger().With("command", "sync")

	synchronizer := fleet.NewSynchronizer(ws, github.NewClient(ws.Root), process.ExecRunner{}, logger)
	entries, err := synchronizer.SyncAll(ctx, fleet.Options{
		Limit:  params.limit,
		DryRun: params.dryRun,
	})

	if err != nil {
		var syncError *fleet.SyncError
		if github.IsToolingError(err) || errors.As(err, &syncError) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return &cli.ExitError{Code: 2}
		}
		return err
	}

	if done, err := params.EmitJSON(entries); done {
		return err
	}

	if params.dryRun {
		fmt.Fprintf(os.Stdout, "Dry run: %d repositories considered, nothing written.\n", len(entries))
	} else {
		fmt.Fprintf(os.Stdout, "Synchronized %d repositories. Lockfile: %s\n", len(entries), ws.LockPath())
	}
	return nil
}
