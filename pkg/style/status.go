package style

import (
	"github.com/pterm/pterm"

	"github.com/arthur-debert/traitmix/pkg/manifest"
)

// Status types for simulated pipeline steps
type Status string

const (
	StatusOK       Status = "ok"       // Unit applied cleanly
	StatusConflict Status = "conflict" // Conflict policy rejected a key
	StatusSkipped  Status = "skipped"  // Not attempted after an earlier failure
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusOK:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusConflict:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case StatusSkipped:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusForStep maps a simulation step to its display status
func StatusForStep(step manifest.StepResult) Status {
	switch {
	case step.Skipped:
		return StatusSkipped
	case step.Err != nil:
		return StatusConflict
	default:
		return StatusOK
	}
}
