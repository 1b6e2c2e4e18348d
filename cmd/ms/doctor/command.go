// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor implements `ms doctor`: health checks for the tools
// and directories every other command depends on.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/pflag"

	"github.com/petitechose/ms/cmd/ms/cli"
	"github.com/petitechose/ms/cmd/ms/cli/doctor"
	"github.com/petitechose/ms/lib/github"
	"github.com/petitechose/ms/lib/workspace"
)

type doctorParams struct {
	cli.JSONOutput
	fix bool
}

// New builds the `ms doctor` command.
func New() *cli.Command {
	params := &doctorParams{}

	return &cli.Command{
		Name:    "doctor",
		Summary: "Check workspace prerequisites",
		Description: "Verify that git and gh are installed, gh is authenticated,\n" +
			"and the workspace container directories exist. Safe problems\n" +
			"(missing directories) can be repaired with --fix.",
		Usage: "ms doctor [flags]",
		Examples: []cli.Example{
			{Description: "Run all checks", Command: "ms doctor"},
			{Description: "Repair what can be repaired", Command: "ms doctor --fix"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("doctor", pflag.ContinueOnError)
			flagSet.BoolVar(&params.fix, "fix", false, "apply automatic fixes")
			params.AddFlag(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			return runDoctor(params)
		},
	}
}

func runDoctor(params *doctorParams) error {
	root, err := workspace.ResolveRoot()
	if err != nil {
		return err
	}
	ws, err := workspace.Load(root)
	if err != nil {
		return err
	}

	ctx := context.Background()
	results := runChecks(ctx, ws)
	outcome := doctor.ExecuteFixes(ctx, results, params.fix)

	if done, err := params.EmitJSON(doctor.BuildJSON(results)); done {
		if err != nil {
			return err
		}
		for _, result := range results {
			if result.Status == doctor.StatusFail {
				return &cli.ExitError{Code: 1}
			}
		}
		return nil
	}

	return doctor.PrintChecklist(results, params.fix, outcome)
}

// runChecks produces the check results in display order. The gh auth
// check is skipped when gh itself is missing; directory checks carry a
// fix closure that creates the directory.
func runChecks(ctx context.Context, ws *workspace.Workspace) []doctor.Result {
	var results []doctor.Result

	if path, err := exec.LookPath("git"); err != nil {
		results = append(results, doctor.Fail("git", "git not found in PATH"))
	} else {
		results = append(results, doctor.Pass("git", path))
	}

	ghPresent := false
	if path, err := exec.LookPath("gh"); err != nil {
		results = append(results, doctor.Fail("gh", "gh not found in PATH (https://cli.github.com)"))
	} else {
		ghPresent = true
		results = append(results, doctor.Pass("gh", path))
	}

	if !ghPresent {
		results = append(results, doctor.Skip("gh auth", "skipped: gh not installed"))
	} else if err := github.NewClient(ws.Root).Authenticated(ctx); err != nil {
		results = append(results, doctor.Fail("gh auth", "not authenticated; run `gh auth login`"))
	} else {
		results = append(results, doctor.Pass("gh auth", "authenticated"))
	}

	return append(results, directoryChecks(ws)...)
}

// directoryChecks verifies the workspace container directories exist.
// Missing ones carry a fix closure that creates them.
func directoryChecks(ws *workspace.Workspace) []doctor.Result {
	var results []doctor.Result
	for _, dir := range []struct {
		name string
		path string
	}{
		{"midi-studio dir", ws.MidiStudioDir()},
		{"open-control dir", ws.OpenControlDir()},
	} {
		if info, err := os.Stat(dir.path); err == nil && info.IsDir() {
			results = append(results, doctor.Pass(dir.name, dir.path))
			continue
		}
		path := dir.path
		results = append(results, doctor.FailWithFix(dir.name,
			fmt.Sprintf("missing: %s", path),
			fmt.Sprintf("create %s", path),
			func(ctx context.Context) error {
				return os.MkdirAll(path, 0755)
			}))
	}
	return results
}
