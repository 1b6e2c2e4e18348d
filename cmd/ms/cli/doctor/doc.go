// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package doctor provides the infrastructure for the ms doctor command.
//
// The doctor command runs a series of health checks and reports results
// in a consistent format. Fixable failures carry fix closures that can
// be executed in --fix mode. The package provides:
//
//   - [Result] type with status, message, and optional fix action
//   - Constructors: [Pass], [Fail], [FailWithFix], [Warn], [Skip]
//   - [ExecuteFixes] for running fix closures
//   - [PrintChecklist] for human-readable output
//   - [BuildJSON] for machine-readable output
//
// Domain-specific checks (what to check, how to fix) live in the doctor
// command's package. This package provides only the workflow
// infrastructure.
package doctor
