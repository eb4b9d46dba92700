package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAbsent  = "absent"
	StatusPresent = "present"
)

// Attendance is the per-identity, per-civil-day record. InTime and OutTime are
// stored as wall-clock values in the configured zone (timestamp without time
// zone); the repository converts them at the boundary.
type Attendance struct {
	ID             uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	IdentityID     string       `gorm:"column:identity_id;type:varchar(50);not null;uniqueIndex:uq_attendance_identity_date,priority:1"`
	AttendanceDate time.Time    `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_identity_date,priority:2"`
	Status         string       `gorm:"column:status;type:varchar(20);not null"`
	InTime         *time.Time   `gorm:"column:in_time;type:timestamp"`
	OutTime        *time.Time   `gorm:"column:out_time;type:timestamp"`
	CreatedAt      time.Time    `gorm:"column:created_at;type:timestamptz"`
	UpdatedAt      time.Time    `gorm:"column:updated_at;type:timestamptz"`
	Identity       *IdentityRef `gorm:"foreignKey:IdentityID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type IdentityRef struct {
	ID      string  `gorm:"column:id;primaryKey"`
	Name    string  `gorm:"column:name"`
	GroupID *string `gorm:"column:group_id"`
}

func (IdentityRef) TableName() string {
	return "identities"
}

// State is the position of a record in the daily lifecycle.
type State string

const (
	StateAbsent     State = "absent"
	StatePresent    State = "present"     // checked in, no checkout yet
	StateCheckedOut State = "checked_out" // checked in and out at least once
)

func (a *Attendance) State() State {
	if a == nil || a.Status != StatusPresent || a.InTime == nil {
		return StateAbsent
	}
	if a.OutTime == nil {
		return StatePresent
	}
	return StateCheckedOut
}
