// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"fmt"
	"os"
	"strings"

	"github.com/petitechose/ms/cmd/ms/cli"
)

// PrintChecklist prints check results as a human-readable checklist.
// Returns an [cli.ExitError] with code 1 when any check failed, so the
// caller can propagate the non-zero exit without printing the error.
func PrintChecklist(results []Result, fixMode bool, outcome Outcome) error {
	anyFailed := false
	fixableCount := 0
	fixedCount := 0

	for _, result := range results {
		prefix := strings.ToUpper(string(result.Status))
		fmt.Fprintf(os.Stdout, "[%-5s]  %-30s  %s\n", prefix, result.Name, result.Message)

		switch result.Status {
		case StatusFail:
			anyFailed = true
			if result.FixHint != "" {
				fixableCount++
			}
		case StatusFixed:
			fixedCount++
		}
	}

	fmt.Fprintln(os.Stdout)

	if anyFailed {
		if !fixMode && fixableCount > 0 {
			fmt.Fprintf(os.Stdout, "Run with --fix to repair %d issue(s).\n", fixableCount)
		} else {
			fmt.Fprintln(os.Stdout, "Some checks failed.")
		}
		return &cli.ExitError{Code: 1}
	}

	if fixedCount > 0 {
		fmt.Fprintf(os.Stdout, "%d issue(s) repaired.\n", fixedCount)
		return nil
	}

	fmt.Fprintln(os.Stdout, "All checks passed.")
	return nil
}
