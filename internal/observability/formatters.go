// Package observability renders human-readable summaries for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/interview-roadmap/internal/roadmap"
	"github.com/jonathan/interview-roadmap/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5C07B"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			Width(boxWidth - 2)
)

// Printer writes boxed summaries to an output stream.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a rounded box with a title and content. Lines wider than
// the box are truncated so the border never wraps.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title, content string) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = truncate(line, boxWidth-4)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		strings.Join(lines, "\n"),
	)
	fmt.Fprintln(p.out, boxStyle.Render(body))
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// RoadmapSummary is what PrintRoadmap shows besides the record itself.
type RoadmapSummary struct {
	Path            string // where the artifact was written, if any
	Fallback        bool   // the standard template replaced the model's answer
	Reason          string // why the fallback was used
	ResearchMissing bool   // no company research reached the prompt
}

// PrintRoadmap outputs a summary of a roadmap: identity, difficulty, each
// round with its topics, the study order, and the job-description skills.
func (p *Printer) PrintRoadmap(r *types.Roadmap, summary RoadmapSummary) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:     %s\n", r.Company))
	sb.WriteString(fmt.Sprintf("Role:        %s\n", r.Role))
	sb.WriteString(fmt.Sprintf("Difficulty:  %s\n", r.Difficulty))
	sb.WriteString(fmt.Sprintf("Rounds:      %d\n", len(r.Rounds)))
	sb.WriteString("\n")

	sb.WriteString("Interview Rounds:\n")
	for i, round := range r.Rounds {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, round.Type))
		sb.WriteString(fmt.Sprintf("     Topics: %s\n", strings.Join(round.Topics, ", ")))
	}
	sb.WriteString("\n")

	if len(r.RecommendedOrder) > 0 {
		sb.WriteString("Recommended Study Order:\n")
		count := min(len(r.RecommendedOrder), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, r.RecommendedOrder[i]))
		}
		if len(r.RecommendedOrder) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.RecommendedOrder)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(r.Evidence.KeySkills) > 0 {
		sb.WriteString(fmt.Sprintf("Key Skills from JD: %s\n", strings.Join(r.Evidence.KeySkills, ", ")))
	} else {
		sb.WriteString("Key Skills from JD: none detected\n")
	}

	if summary.Fallback {
		note := "Note: standard roadmap template used"
		if summary.Reason != "" {
			note += " (" + summary.Reason + ")"
		}
		sb.WriteString("\n" + noteStyle.Render(truncate(note, boxWidth-4)) + "\n")
	}
	if summary.ResearchMissing {
		note := "Note: no company research, standard process assumed"
		sb.WriteString("\n" + noteStyle.Render(truncate(note, boxWidth-4)) + "\n")
	}
	if summary.Path != "" {
		sb.WriteString(fmt.Sprintf("\nSaved to: %s\n", summary.Path))
	}

	p.printBox("ROADMAP SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings lists soft validation findings, grouped in one box.
func (p *Printer) PrintWarnings(warnings []roadmap.Warning) {
	if len(warnings) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total warnings: %d\n\n", len(warnings)))
	count := min(len(warnings), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", warnings[i].Field))
		sb.WriteString(fmt.Sprintf("    %s\n", warnings[i].Message))
	}
	if len(warnings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(warnings)-maxItemsToShow))
	}

	p.printBox("VALIDATION WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCompanyInfo outputs the research summary passed to the model.
func (p *Printer) PrintCompanyInfo(company, summary string) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company: %s\n\n", company))
	for _, line := range wrap(summary, boxWidth-4) {
		sb.WriteString(line + "\n")
	}

	p.printBox("COMPANY RESEARCH", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap splits text into lines of at most width runes on word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && utf8.RuneCountInString(current.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
