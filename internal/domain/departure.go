package domain

import "time"

// DepartureOutcome tags the result of a departure computation.
type DepartureOutcome string

const (
	// OutcomeDepart means the user can still make the bus by leaving in
	// DepartInSeconds.
	OutcomeDepart DepartureOutcome = "depart"
	// OutcomeTooLate means the bus cannot reasonably be caught on foot.
	OutcomeTooLate DepartureOutcome = "too_late"
	// OutcomeUnknown means no walking estimate was available.
	OutcomeUnknown DepartureOutcome = "unknown"
)

// DeparturePlan is the derived "leave by" answer for one chosen bus.
type DeparturePlan struct {
	Outcome         DepartureOutcome `json:"outcome"`
	DepartInSeconds int              `json:"depart_in_seconds,omitempty"`
	DepartAt        *time.Time       `json:"depart_at,omitempty"`
	ArrivalTime     int              `json:"arrival_time"`
	WalkingDuration int              `json:"walking_duration"`
	MarginSeconds   int              `json:"margin_seconds"`
}
