// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"

	"github.com/petitechose/ms/lib/workspace"
)

// setWorkspace publishes the --workspace flag value through the
// environment so every command (and any subprocess it spawns) resolves
// the same root.
func setWorkspace(root string) error {
	return os.Setenv(workspace.RootEnvVar, root)
}
