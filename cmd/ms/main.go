// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/petitechose/ms/cmd/ms/commands"
	"github.com/petitechose/ms/lib/process"
)

func main() {
	if err := commands.Execute(os.Args[1:]); err != nil {
		// Commands that print their own output (like doctor) return an
		// ExitError with the desired exit code. Don't print a redundant
		// "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		process.Fatal(err)
	}
}
