// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package github queries the GitHub CLI (gh) for organization
// repository catalogs and authentication state.
//
// Everything goes through the gh binary rather than the REST API: the
// developer already has gh configured for day-to-day work, so the sync
// tool inherits their credentials without managing tokens itself. The
// surface is deliberately tiny — list an org's repositories, check
// that the caller is logged in — and anything else is out of scope.
//
// The gh JSON output is treated as untrusted input: the response is
// parsed loosely and validated field by field, and malformed entries
// within an otherwise valid array are skipped instead of failing the
// whole batch.
package github
