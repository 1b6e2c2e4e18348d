// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/petitechose/ms/lib/fleet"
	"github.com/petitechose/ms/lib/git"
)

// Renderer turns collected repository statuses into terminal output:
// a PENDING panel for repositories needing attention and an OK panel
// for clean ones. Color is dropped entirely when colored is false
// (piped output, --no-color).
type Renderer struct {
	detailed bool

	title     lipgloss.Style
	okTitle   lipgloss.Style
	pending   lipgloss.Style
	ok        lipgloss.Style
	name      lipgloss.Style
	errName   lipgloss.Style
	dim       lipgloss.Style
	branch    lipgloss.Style
	modified  lipgloss.Style
	added     lipgloss.Style
	deleted   lipgloss.Style
	untracked lipgloss.Style
	ahead     lipgloss.Style
	behind    lipgloss.Style
}

// NewRenderer builds a renderer. detailed adds per-file entries under
// each pending repository.
func NewRenderer(colored, detailed bool) *Renderer {
	r := &Renderer{detailed: detailed}

	if !colored {
		plain := lipgloss.NewStyle()
		r.title, r.okTitle = plain, plain
		r.pending = plain.Border(lipgloss.RoundedBorder()).Padding(0, 1)
		r.ok = r.pending
		r.name, r.errName, r.dim, r.branch = plain, plain, plain, plain
		r.modified, r.added, r.deleted, r.untracked = plain, plain, plain, plain
		r.ahead, r.behind = plain, plain
		return r
	}

	yellow := lipgloss.Color("3")
	green := lipgloss.Color("2")
	red := lipgloss.Color("1")
	cyan := lipgloss.Color("6")
	blue := lipgloss.Color("4")

	r.title = lipgloss.NewStyle().Bold(true).Foreground(yellow)
	r.okTitle = lipgloss.NewStyle().Bold(true).Foreground(green)
	r.pending = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(yellow).
		Padding(0, 1)
	r.ok = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(green).
		Padding(0, 1)
	r.name = lipgloss.NewStyle().Bold(true)
	r.errName = lipgloss.NewStyle().Bold(true).Foreground(red)
	r.dim = lipgloss.NewStyle().Faint(true)
	r.branch = lipgloss.NewStyle().Foreground(blue)
	r.modified = lipgloss.NewStyle().Foreground(yellow)
	r.added = lipgloss.NewStyle().Foreground(green)
	r.deleted = lipgloss.NewStyle().Foreground(red)
	r.untracked = lipgloss.NewStyle().Foreground(cyan)
	r.ahead = lipgloss.NewStyle().Foreground(green)
	r.behind = lipgloss.NewStyle().Foreground(red)
	return r
}

// Render produces the full report. Either panel is omitted when its
// partition is empty; an empty workspace yields a one-line notice.
func (r *Renderer) Render(pending, clean []fleet.RepoStatus) string {
	var sections []string

	if len(pending) > 0 {
		var blocks []string
		for _, repo := range pending {
			blocks = append(blocks, r.renderPending(repo))
		}
		body := strings.Join(blocks, "\n\n")
		sections = append(sections, r.title.Render("PENDING")+"\n"+r.pending.Render(body))
	}

	if len(clean) > 0 {
		names := make([]string, len(clean))
		for i, repo := range clean {
			names[i] = r.dim.Render(repo.Name)
		}
		header := r.okTitle.Render("OK") + r.dim.Render(fmt.Sprintf(" (%d)", len(clean)))
		sections = append(sections, header+"\n"+r.ok.Render(strings.Join(names, "\n")))
	}

	if len(sections) == 0 {
		return r.dim.Render("No repos found") + "\n"
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// renderPending renders one repository block: name, path, then branch
// with change counts and divergence, then file entries when detailed.
func (r *Renderer) renderPending(repo fleet.RepoStatus) string {
	if repo.Err != nil {
		return r.errName.Render(repo.Name) + "\n" + r.dim.Render(repo.Err.Error())
	}

	branch := repo.Status.Branch
	if branch == "" {
		branch = "?"
	}
	statusLine := r.branch.Render(branch)
	if counts := r.renderCounts(repo.Status); counts != "" {
		statusLine += "  " + counts
	}
	if divergence := r.renderDivergence(repo.Status); divergence != "" {
		statusLine += "  " + divergence
	}

	lines := []string{
		r.name.Render(repo.Name),
		r.dim.Render(repo.Path),
		statusLine,
	}

	if r.detailed {
		for _, entry := range repo.Status.Entries {
			lines = append(lines, r.renderEntry(entry))
		}
	}
	return strings.Join(lines, "\n")
}

// renderCounts renders the aggregate change counts, e.g. "2M 1A 3?".
func (r *Renderer) renderCounts(status git.Status) string {
	counts := status.Counts()
	var parts []string
	if counts.Modified > 0 {
		parts = append(parts, r.modified.Render(fmt.Sprintf("%dM", counts.Modified)))
	}
	if counts.Added > 0 {
		parts = append(parts, r.added.Render(fmt.Sprintf("%dA", counts.Added)))
	}
	if counts.Deleted > 0 {
		parts = append(parts, r.deleted.Render(fmt.Sprintf("%dD", counts.Deleted)))
	}
	if counts.Untracked > 0 {
		parts = append(parts, r.untracked.Render(fmt.Sprintf("%d?", counts.Untracked)))
	}
	return strings.Join(parts, " ")
}

// renderDivergence renders ahead/behind markers, e.g. "2^ 1v".
func (r *Renderer) renderDivergence(status git.Status) string {
	var parts []string
	if status.Ahead > 0 {
		parts = append(parts, r.ahead.Render(fmt.Sprintf("%d^", status.Ahead)))
	}
	if status.Behind > 0 {
		parts = append(parts, r.behind.Render(fmt.Sprintf("%dv", status.Behind)))
	}
	return strings.Join(parts, " ")
}

// renderEntry renders a single porcelain entry with a one-letter
// classification marker.
func (r *Renderer) renderEntry(entry git.StatusEntry) string {
	marker, style := entryMarker(entry.XY), r.dim
	switch marker {
	case "?":
		style = r.untracked
	case "M":
		style = r.modified
	case "A":
		style = r.added
	case "D":
		style = r.deleted
	}
	return "    " + style.Render(marker) + " " + r.dim.Render(entry.Path)
}

// entryMarker picks the display character for a porcelain XY code.
func entryMarker(xy string) string {
	switch {
	case xy == "??":
		return "?"
	case xy[0] == 'M' || xy[1] == 'M':
		return "M"
	case xy[0] == 'A':
		return "A"
	case xy[0] == 'D' || xy[1] == 'D':
		return "D"
	case xy[0] != ' ':
		return string(xy[0])
	default:
		return string(xy[1])
	}
}

// PlainText generates the uncolored summary that goes to the clipboard
// (and --json consumers pasting into chats): a PENDING section with one
// block per repository, then an OK section listing clean names.
func PlainText(pending, clean []fleet.RepoStatus, detailed bool) string {
	var lines []string

	if len(pending) > 0 {
		lines = append(lines, "PENDING", "")
		for _, repo := range pending {
			if repo.Err != nil {
				lines = append(lines, repo.Name, fmt.Sprintf("  error: %v", repo.Err))
				lines = append(lines, "")
				continue
			}

			counts := repo.Status.Counts()
			var parts []string
			if counts.Modified > 0 {
				parts = append(parts, fmt.Sprintf("%dM", counts.Modified))
			}
			if counts.Added > 0 {
				parts = append(parts, fmt.Sprintf("%dA", counts.Added))
			}
			if counts.Deleted > 0 {
				parts = append(parts, fmt.Sprintf("%dD", counts.Deleted))
			}
			if counts.Untracked > 0 {
				parts = append(parts, fmt.Sprintf("%d?", counts.Untracked))
			}

			lines = append(lines, repo.Name, repo.Path,
				fmt.Sprintf("%s  %s", repo.Status.Branch, strings.Join(parts, " ")))

			if detailed {
				for _, entry := range repo.Status.Entries {
					lines = append(lines, fmt.Sprintf("  %s %s", entryMarker(entry.XY), entry.Path))
				}
			}
			lines = append(lines, "")
		}
	}

	if len(clean) > 0 {
		lines = append(lines, fmt.Sprintf("OK (%d)", len(clean)))
		for _, repo := range clean {
			lines = append(lines, "  "+repo.Name)
		}
	}

	return strings.Join(lines, "\n")
}
