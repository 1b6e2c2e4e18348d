// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides synchronous execution of external tools
// (git, gh) with captured output, plus the binary entrypoint helpers.
//
// The central type is [Runner]: a single-method interface that runs an
// argument vector in a working directory and returns captured stdout.
// A non-zero exit is not an exceptional condition for the tools this
// CLI drives — it is reported as a typed [ExecError] carrying the exit
// code and captured stderr, so callers branch on the outcome with
// errors.As rather than parsing message text.
//
// [ExecRunner] is the production implementation; tests substitute fake
// runners to script tool behavior without spawning processes.
package process
