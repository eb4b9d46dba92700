package events

import "time"

const AttendanceTopic = "attendance.transitions.v1"

const (
	EventTypeAttendanceTransition = "attendance_transition"
	EventTypeAttendanceReset      = "attendance_reset"

	AggregateAttendance = "attendance"
	AggregateRoster     = "roster"
)

// AttendanceTransitionEvent is emitted for every detection that changed a
// record: checkin, checkout or checkout_update.
type AttendanceTransitionEvent struct {
	EventType  string     `json:"event_type"`
	RecordID   string     `json:"record_id"`
	IdentityID string     `json:"identity_id"`
	Outcome    string     `json:"outcome"`
	Date       string     `json:"date"`
	InTime     *time.Time `json:"in_time,omitempty"`
	OutTime    *time.Time `json:"out_time,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// AttendanceResetEvent is emitted once per completed reset sweep.
type AttendanceResetEvent struct {
	EventType  string    `json:"event_type"`
	Date       string    `json:"date"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurred_at"`
}
