package jobs

import "strings"

// Phase is the semantic lifecycle stage of a job as shown by the dashboard.
type Phase string

const (
	PhaseIdle      Phase = "IDLE"
	PhaseUploading Phase = "UPLOADING"
	PhasePending   Phase = "PENDING"
	PhaseRunning   Phase = "RUNNING"
	PhaseSuccess   Phase = "SUCCESS"
	PhaseFailure   Phase = "FAILURE"
)

// IsTerminal reports whether no further transitions are expected for this
// job attempt without a new user action.
func (p Phase) IsTerminal() bool {
	return p == PhaseSuccess || p == PhaseFailure
}

// Display color tokens. The presentation layer maps these to whatever its
// styling system uses.
const (
	ColorGreen  = "green"
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorBlue   = "blue"
	ColorGray   = "gray"
)

// Classification is the outcome of normalizing a raw backend status string.
type Classification struct {
	Phase      Phase
	ColorClass string
}

// Classify maps whatever status vocabulary the backend uses onto the
// canonical Phase set. The backend is known to mix synonyms (COMPLETED for
// SUCCESS, FAILED for FAILURE, STARTED for RUNNING), so normalization lives
// here instead of scattered string comparisons in the controller.
//
// Total over all strings: an unrecognized status passes through as its own
// phase label with the neutral color.
func Classify(rawStatus string) Classification {
	status := strings.ToUpper(strings.TrimSpace(rawStatus))
	switch {
	case status == "SUCCESS" || status == "COMPLETED":
		return Classification{Phase: PhaseSuccess, ColorClass: ColorGreen}
	case strings.Contains(status, "FAIL"):
		return Classification{Phase: PhaseFailure, ColorClass: ColorRed}
	case status == "PENDING":
		return Classification{Phase: PhasePending, ColorClass: ColorYellow}
	case status == "RUNNING" || status == "STARTED":
		return Classification{Phase: PhaseRunning, ColorClass: ColorBlue}
	case status == "UPLOADING":
		return Classification{Phase: PhaseUploading, ColorClass: ColorBlue}
	case status == "" || status == "IDLE":
		return Classification{Phase: PhaseIdle, ColorClass: ColorGray}
	default:
		return Classification{Phase: Phase(status), ColorClass: ColorGray}
	}
}
