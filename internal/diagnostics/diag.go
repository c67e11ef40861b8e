// Package diagnostics defines the messages pushed to /diag clients.
package diagnostics

import "fmt"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

// Codes emitted by the core.
const (
	RoutineActive   = "ROUTINE.ACTIVE"
	ControlBadJSON  = "CONTROL.BAD_JSON"
	ControlRejected = "CONTROL.REJECTED"
	OutputWrite     = "OUTPUT.WRITE"
	ButtonPressed   = "BUTTON.PRESSED"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// WriteFailed describes a transport error for frame n.
func WriteFailed(n uint64, err error) Diagnostic {
	return Diagnostic{
		Severity: Err,
		Code:     OutputWrite,
		Summary:  fmt.Sprintf("Frame %d was not presented", n),
		Detail:   err.Error(),
		LikelyCauses: []string{
			"SPI device busy or unplugged",
			"terminal closed",
		},
		SuggestedFixes: []string{
			"check spi.dev and wiring",
			"run with driver: sim to isolate the renderer",
		},
		Evidence: map[string]any{"frame": n},
	}
}
