// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package git

import "strings"

// StatusEntry is one changed path from porcelain status output. XY is
// the two-character index/worktree code pair ("??" for untracked, "M "
// for staged modification, " M" for unstaged, and so on). Path is the
// repository-relative path; for renames and copies it keeps git's
// literal "old -> new" form.
type StatusEntry struct {
	XY   string
	Path string
}

// Status is a parsed porcelain status snapshot of one working tree.
// Branch is "" when HEAD is detached. Ahead and Behind count commits
// relative to the tracked upstream and are independent of cleanliness.
type Status struct {
	Branch         string
	Ahead          int
	Behind         int
	Entries        []StatusEntry
	UntrackedCount int
}

// IsClean reports whether the working tree has no change entries.
func (s Status) IsClean() bool {
	return len(s.Entries) == 0
}

// HasDivergence reports whether the branch is ahead of or behind its
// upstream.
func (s Status) HasDivergence() bool {
	return s.Ahead > 0 || s.Behind > 0
}

// ChangeCounts buckets status entries for display. An entry counts as
// Modified when either code position is M, Added when the index
// position is A, Deleted when either position is D. Everything else
// (renames, copies, conflicts) lands in Other but is still rendered
// with its literal code.
type ChangeCounts struct {
	Modified  int
	Added     int
	Deleted   int
	Untracked int
	Other     int
}

// Counts classifies all entries of the snapshot.
func (s Status) Counts() ChangeCounts {
	var counts ChangeCounts
	for _, entry := range s.Entries {
		switch {
		case entry.XY == "??":
			counts.Untracked++
		case entry.XY[0] == 'M' || entry.XY[1] == 'M':
			counts.Modified++
		case entry.XY[0] == 'A':
			counts.Added++
		case entry.XY[0] == 'D' || entry.XY[1] == 'D':
			counts.Deleted++
		default:
			counts.Other++
		}
	}
	return counts
}

// ParseStatus parses "git status --porcelain -b" output. The first
// line is the branch/tracking header; every following line is a
// two-character status code and a path. Malformed lines (shorter than
// four characters) are ignored rather than failing the whole parse —
// truncated output should not make a repository unreadable.
func ParseStatus(output string) Status {
	var status Status

	lines := strings.Split(output, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "##") {
		parseBranchHeader(strings.TrimSpace(strings.TrimPrefix(lines[0], "##")), &status)
		lines = lines[1:]
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "??") {
			if len(line) < 4 {
				continue
			}
			status.Entries = append(status.Entries, StatusEntry{XY: "??", Path: line[3:]})
			status.UntrackedCount++
			continue
		}
		if len(line) < 4 {
			continue
		}
		status.Entries = append(status.Entries, StatusEntry{XY: line[:2], Path: line[3:]})
	}

	return status
}

// parseBranchHeader parses the "## <branch>...<upstream> [ahead N,
// behind M]" header into status. Variants:
//
//	## main
//	## main...origin/main
//	## main...origin/main [ahead 2, behind 1]
//	## HEAD (no branch)
//	## No commits yet on main
func parseBranchHeader(header string, status *Status) {
	if header == "HEAD (no branch)" {
		// Detached HEAD: no branch name to report.
		return
	}
	if name, found := strings.CutPrefix(header, "No commits yet on "); found {
		status.Branch = name
		return
	}

	branchPart := header
	if start := strings.Index(header, " ["); start >= 0 {
		bracket := header[start+2:]
		bracket = strings.TrimSuffix(bracket, "]")
		for _, field := range strings.Split(bracket, ", ") {
			if value, found := strings.CutPrefix(field, "ahead "); found {
				status.Ahead = parseCount(value)
			}
			if value, found := strings.CutPrefix(field, "behind "); found {
				status.Behind = parseCount(value)
			}
		}
		branchPart = header[:start]
	}

	branch, _, _ := strings.Cut(branchPart, "...")
	status.Branch = branch
}

// parseCount parses a small non-negative decimal, returning 0 for
// anything unexpected.
func parseCount(value string) int {
	count := 0
	for _, digit := range value {
		if digit < '0' || digit > '9' {
			return 0
		}
		count = count*10 + int(digit-'0')
	}
	return count
}
