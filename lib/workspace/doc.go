// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspace models the on-disk layout of a midi-studio
// development workspace: a root directory (optionally itself a git
// repository) with two fixed container directories, midi-studio/ and
// open-control/, each holding independently cloned repositories as
// immediate subdirectories.
//
// Configuration comes from an optional ms.yaml at the workspace root.
// There is no search-path magic: the file either sits at the root or
// the defaults apply. Defaults cover the two tracked GitHub orgs, the
// catalog limit, and the state directory (.ms/) that holds the
// repos.lock.json snapshot.
package workspace
