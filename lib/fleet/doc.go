// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package fleet reconciles the workspace against the remote repository
// catalogs: it clones missing repositories, fast-forwards clean ones,
// and records the resolved state of every considered repository in a
// lockfile snapshot.
//
// The synchronizer is deliberately conservative. It never mutates a
// repository with uncommitted changes or one checked out on a branch
// other than its declared default — protecting local work is a
// successful outcome, not a failure. Hard failures (a clone that
// errors, an org catalog that cannot be listed) mark the pass failed
// but never stop the remaining repositories from being processed.
//
// The package also hosts the status reporter, which aggregates git
// status across every repository physically present in the workspace,
// tracked or not.
package fleet
