// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional per-workspace configuration file.
const ConfigFileName = "ms.yaml"

// LockFileName is the fleet sync snapshot inside the state directory.
const LockFileName = "repos.lock.json"

// OpenControlOrg is the org whose repositories land under
// open-control/ instead of midi-studio/.
const OpenControlOrg = "open-control"

// Config holds the user-tunable workspace settings. Zero values fall
// back to the defaults, so a partial ms.yaml overrides only what it
// names.
type Config struct {
	// Orgs are the GitHub organizations tracked by `ms sync`, in
	// processing order.
	Orgs []string `yaml:"orgs"`

	// Limit caps how many repositories are listed per org.
	Limit int `yaml:"limit"`

	// StateDir holds durable tool state (the lockfile). Relative
	// paths are resolved against the workspace root.
	StateDir string `yaml:"state_dir"`
}

// DefaultConfig returns the built-in settings: the two tracked orgs,
// a 200-repository catalog limit, and .ms/ as the state directory.
func DefaultConfig() Config {
	return Config{
		Orgs:     []string{OpenControlOrg, "petitechose-midi-studio"},
		Limit:    200,
		StateDir: ".ms",
	}
}

// RootEnvVar points commands at a workspace other than the current
// directory. The --workspace flag takes precedence over it.
const RootEnvVar = "MS_WORKSPACE"

// ResolveRoot picks the workspace root for a command invocation:
// the MS_WORKSPACE environment variable when set, the current
// directory otherwise.
func ResolveRoot() (string, error) {
	if root := os.Getenv(RootEnvVar); root != "" {
		return root, nil
	}
	root, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving current directory: %w", err)
	}
	return root, nil
}

// Workspace is a resolved workspace root plus its effective config.
type Workspace struct {
	Root   string
	Config Config
}

// Load resolves root to an absolute path and reads ms.yaml if present.
// A missing config file is not an error; a malformed one is — silent
// fallback would hide typos in the file the user just edited.
func Load(root string) (*Workspace, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}

	config := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(absRoot, ConfigFileName))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
		}
		return &Workspace{Root: absRoot, Config: config}, nil
	}

	var overrides Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&overrides); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	if len(overrides.Orgs) > 0 {
		config.Orgs = overrides.Orgs
	}
	if overrides.Limit > 0 {
		config.Limit = overrides.Limit
	}
	if overrides.StateDir != "" {
		config.StateDir = overrides.StateDir
	}

	return &Workspace{Root: absRoot, Config: config}, nil
}

// StateDir returns the absolute state directory path.
func (w *Workspace) StateDir() string {
	if filepath.IsAbs(w.Config.StateDir) {
		return w.Config.StateDir
	}
	return filepath.Join(w.Root, w.Config.StateDir)
}

// LockPath returns the absolute path of the sync lockfile.
func (w *Workspace) LockPath() string {
	return filepath.Join(w.StateDir(), LockFileName)
}

// MidiStudioDir is the container for repositories of every org except
// open-control.
func (w *Workspace) MidiStudioDir() string {
	return filepath.Join(w.Root, "midi-studio")
}

// OpenControlDir is the container for open-control repositories.
func (w *Workspace) OpenControlDir() string {
	return filepath.Join(w.Root, "open-control")
}

// DestDir returns the clone destination for a repository: open-control
// org repositories land under open-control/, everything else under
// midi-studio/.
func (w *Workspace) DestDir(org, name string) string {
	if org == OpenControlOrg {
		return filepath.Join(w.OpenControlDir(), name)
	}
	return filepath.Join(w.MidiStudioDir(), name)
}
