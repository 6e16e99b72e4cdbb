package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/traitmix/pkg/manifest"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	summaryOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	summaryFail  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	detailIndent = "    "
)

// RenderReport renders a simulation report for the terminal. With
// FormatText all styling is skipped, which is also what tests assert
// against.
func RenderReport(report *manifest.Report, format Format) string {
	styled := format == FormatTerminal

	var b strings.Builder
	for i, result := range report.Results {
		header := fmt.Sprintf("pipeline %d -> %s", i+1, result.Target)
		if styled {
			header = headerStyle.Render(header)
		}
		b.WriteString(header)
		b.WriteString("\n")

		for _, step := range result.Steps {
			b.WriteString(renderStep(step, styled))
		}
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d pipeline(s): %d ok, %d failed",
		len(report.Results), report.Succeeded, report.Failed)
	if styled {
		if report.HasConflicts() {
			summary = summaryFail.Render(summary)
		} else {
			summary = summaryOK.Render(summary)
		}
	}
	b.WriteString(summary)
	b.WriteString("\n")

	return b.String()
}

func renderStep(step manifest.StepResult, styled bool) string {
	status := StatusForStep(step)
	badge := fmt.Sprintf("%-8s", string(status))
	if styled {
		badge = StatusStyle(status).Sprint(badge)
	}

	line := fmt.Sprintf("  %s %s (%s)\n", badge, step.Unit, step.Kind)
	if step.Err != nil {
		line += detailIndent + step.Err.Error() + "\n"
	}
	return line
}
