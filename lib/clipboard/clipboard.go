// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

// Package clipboard copies text to the system clipboard. The workspace
// status report is pasted into chats and issues constantly, so the CLI
// copies it by default; a machine without a clipboard (headless CI, a
// bare container) must not break the command that is otherwise working.
package clipboard

import "github.com/atotto/clipboard"

// Copy places text on the system clipboard. The returned error is
// advisory: callers log it and continue, since clipboard availability
// is an environment property, not a correctness one.
func Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard mechanism exists on this
// system (an X11/Wayland tool on Linux, always true on macOS and
// Windows).
func Available() bool {
	return !clipboard.Unsupported
}
