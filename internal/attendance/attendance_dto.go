package attendance

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceResponse struct {
	ID         string  `json:"id,omitempty"`
	IdentityID string  `json:"identity_id"`
	Name       string  `json:"name,omitempty"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	InTime     *string `json:"in_time"`
	OutTime    *string `json:"out_time"`
}

type DailyAttendanceResponse struct {
	Date       string               `json:"date"`
	Attendance []AttendanceResponse `json:"attendance"`
}

type HistoryResponse struct {
	IdentityID string               `json:"identity_id"`
	Name       string               `json:"name"`
	History    []AttendanceResponse `json:"history"`
}

type RosterStatusResponse struct {
	Date         string               `json:"date"`
	GroupID      string               `json:"group_id,omitempty"`
	Total        int                  `json:"total"`
	PresentCount int                  `json:"present_count"`
	AbsentCount  int                  `json:"absent_count"`
	Identities   []AttendanceResponse `json:"identities"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		IdentityID: a.IdentityID,
		Date:       a.AttendanceDate.Format(time.DateOnly),
		Status:     a.Status,
		InTime:     formatTime(a.InTime),
		OutTime:    formatTime(a.OutTime),
	}
	if a.ID != uuid.Nil {
		resp.ID = a.ID.String()
	}
	if a.Identity != nil {
		resp.Name = a.Identity.Name
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}
