// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package github

import "errors"

// ToolMissingError reports that the gh binary is not installed. This
// is terminal for a sync pass — there is no credential fallback.
type ToolMissingError struct {
	Tool string
}

func (e *ToolMissingError) Error() string {
	return e.Tool + ": missing (install the GitHub CLI)"
}

// NotAuthenticatedError reports that gh is installed but the caller is
// not logged in.
type NotAuthenticatedError struct {
	Stderr string
}

func (e *NotAuthenticatedError) Error() string {
	return "gh auth: not logged in (run `gh auth login`)"
}

// IsToolingError reports whether err is one of the terminal
// environment errors: gh missing or not authenticated.
func IsToolingError(err error) bool {
	var missing *ToolMissingError
	var unauthenticated *NotAuthenticatedError
	return errors.As(err, &missing) || errors.As(err, &unauthenticated)
}
