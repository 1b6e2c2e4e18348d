// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete ms CLI command tree.
package commands

import (
	"fmt"
	"strings"

	"github.com/petitechose/ms/cmd/ms/cli"
	doctorcmd "github.com/petitechose/ms/cmd/ms/doctor"
	statuscmd "github.com/petitechose/ms/cmd/ms/status"
	synccmd "github.com/petitechose/ms/cmd/ms/sync"
	"github.com/petitechose/ms/lib/version"
)

// Root builds and returns the complete ms CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "ms",
		Description: `ms: midi-studio workspace tool.

Keep a multi-repository workspace in sync with its GitHub orgs and
report pending work across every repository at a glance.`,
		Subcommands: []*cli.Command{
			synccmd.New(),
			statuscmd.New(),
			doctorcmd.New(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("ms %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Check the environment (start here when lost)",
				Command:     "ms doctor",
			},
			{
				Description: "Clone and fast-forward everything",
				Command:     "ms sync",
			},
			{
				Description: "See pending work across the workspace",
				Command:     "ms status -d",
			},
		},
	}
}

// Execute resolves the global arguments (--version, --workspace) and
// dispatches the rest to the command tree. --workspace is handled here
// rather than per-command: it maps onto the MS_WORKSPACE environment
// variable that workspace.ResolveRoot consults.
func Execute(args []string) error {
	rest, root, showVersion, err := globals(args)
	if err != nil {
		return err
	}
	if showVersion {
		fmt.Printf("ms %s\n", version.Info())
		return nil
	}
	if root != "" {
		if err := setWorkspace(root); err != nil {
			return err
		}
	}
	return Root().Execute(rest)
}

// globals strips --version and --workspace from args before dispatch.
func globals(args []string) (rest []string, root string, showVersion bool, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--version" || arg == "-V":
			showVersion = true
		case arg == "--workspace":
			if i+1 >= len(args) {
				return nil, "", false, fmt.Errorf("--workspace requires a path argument")
			}
			root = args[i+1]
			i++
		case strings.HasPrefix(arg, "--workspace="):
			root = strings.TrimPrefix(arg, "--workspace=")
		default:
			rest = append(rest, arg)
		}
	}
	return rest, root, showVersion, nil
}
