package attendance

import "time"

// Outcome is what a single detection did to the day's record.
type Outcome string

const (
	OutcomeCheckIn        Outcome = "checkin"
	OutcomeCheckOut       Outcome = "checkout"
	OutcomeCheckOutUpdate Outcome = "checkout_update"
	OutcomeDebounced      Outcome = "debounced"
	OutcomeNotFound       Outcome = "not_found"
)

// Mutates reports whether the outcome changed persisted state.
func (o Outcome) Mutates() bool {
	switch o {
	case OutcomeCheckIn, OutcomeCheckOut, OutcomeCheckOutUpdate:
		return true
	default:
		return false
	}
}

type TransitionResult struct {
	Outcome Outcome
	Record  *Attendance
}

// apply runs one detection at now against rec and mutates rec when the
// transition table calls for it. rec must be non-nil; a record that does not
// exist yet is passed as a fresh absent record.
//
// The debounce comparison is strict: exactly debounce after the reference
// time is still debounced.
func apply(rec *Attendance, now time.Time, debounce time.Duration) Outcome {
	switch rec.State() {
	case StateAbsent:
		in := now
		rec.Status = StatusPresent
		rec.InTime = &in
		rec.OutTime = nil
		return OutcomeCheckIn
	case StatePresent:
		if now.Sub(*rec.InTime) > debounce {
			out := now
			rec.OutTime = &out
			return OutcomeCheckOut
		}
		return OutcomeDebounced
	default:
		if now.Sub(*rec.OutTime) > debounce {
			out := now
			rec.OutTime = &out
			return OutcomeCheckOutUpdate
		}
		return OutcomeDebounced
	}
}
