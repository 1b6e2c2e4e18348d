// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package status implements `ms status`: a workspace-wide git status
// report, rendered as PENDING/OK panels and copied to the clipboard as
// plain text for pasting into chats and issues.
package status

import (
	"context"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/petitechose/ms/cmd/ms/cli"
	"github.com/petitechose/ms/lib/clipboard"
	"github.com/petitechose/ms/lib/fleet"
	"github.com/petitechose/ms/lib/process"
	"github.com/petitechose/ms/lib/workspace"
)

type statusParams struct {
	cli.JSONOutput
	detailed bool
	fetch    bool
	noCopy   bool
	noColor  bool
}

// repoJSON is one repository in --json output.
type repoJSON struct {
	Name    string     `json:"name"`
	Path    string     `json:"path"`
	Branch  string     `json:"branch,omitempty"`
	Ahead   int        `json:"ahead,omitempty"`
	Behind  int        `json:"behind,omitempty"`
	Files   []fileJSON `json:"files,omitempty"`
	Clean   bool       `json:"clean"`
	Error   string     `json:"error,omitempty"`
}

type fileJSON struct {
	Status string `json:"status"`
	Path   string `json:"path"`
}

// New builds the `ms status` command.
func New() *cli.Command {
	params := &statusParams{}

	return &cli.Command{
		Name:    "status",
		Summary: "Report git status across the workspace",
		Description: "Check pending changes in all workspace repositories.\n\n" +
			"Repositories with uncommitted changes, untracked files, or\n" +
			"divergence from upstream are listed in the PENDING panel;\n" +
			"everything else lands in OK. The plain-text summary is copied\n" +
			"to the clipboard unless --no-copy is given.",
		Usage: "ms status [flags]",
		Examples: []cli.Example{
			{Description: "Quick overview", Command: "ms status"},
			{Description: "Show per-file detail after fetching remotes", Command: "ms status -d -f"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("status", pflag.ContinueOnError)
			flagSet.BoolVarP(&params.detailed, "detailed", "d", false, "show modified files")
			flagSet.BoolVarP(&params.fetch, "fetch", "f", false, "fetch remotes first")
			flagSet.BoolVar(&params.noCopy, "no-copy", false, "don't copy to clipboard")
			flagSet.BoolVar(&params.noColor, "no-color", false, "disable colored output")
			params.AddFlag(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			return runStatus(params)
		},
	}
}

// runStatus always exits 0 once the workspace loads: a status report
// full of dirty repositories is the command working, not failing.
func runStatus(params *statusParams) error {
	root, err := workspace.ResolveRoot()
	if err != nil {
		return err
	}
	ws, err := workspace.Load(root)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := cli.NewCommandLogger().With("command", "status")

	if params.fetch && !params.OutputJSON {
		fmt.Fprintln(os.Stderr, "Fetching remotes...")
	}
	statuses := fleet.NewReporter(ws, process.ExecRunner{}, logger).Collect(ctx, params.fetch)
	pending, clean := fleet.Partition(statuses)

	if done, err := params.EmitJSON(buildJSON(statuses)); done {
		return err
	}

	colored := !params.noColor &&
		term.IsTerminal(int(os.Stdout.Fd())) &&
		termenv.EnvColorProfile() != termenv.Ascii

	renderer := NewRenderer(colored, params.detailed)
	fmt.Fprint(os.Stdout, renderer.Render(pending, clean))

	if !params.noCopy && clipboard.Available() {
		plain := PlainText(pending, clean, params.detailed)
		if err := clipboard.Copy(plain); err != nil {
			logger.Warn("clipboard copy failed", "error", err)
		} else {
			fmt.Fprintln(os.Stdout, "\nCopied to clipboard")
		}
	}
	return nil
}

func buildJSON(statuses []fleet.RepoStatus) []repoJSON {
	repos := make([]repoJSON, 0, len(statuses))
	for _, status := range statuses {
		repo := repoJSON{
			Name:  status.Name,
			Path:  status.Path,
			Clean: !status.NeedsAttention(),
		}
		if status.Err != nil {
			repo.Error = status.Err.Error()
			repos = append(repos, repo)
			continue
		}
		repo.Branch = status.Status.Branch
		repo.Ahead = status.Status.Ahead
		repo.Behind = status.Status.Behind
		for _, entry := range status.Status.Entries {
			repo.Files = append(repo.Files, fileJSON{Status: entry.XY, Path: entry.Path})
		}
		repos = append(repos, repo)
	}
	return repos
}
