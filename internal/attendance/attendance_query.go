package attendance

import (
	"context"
	"errors"
	"time"

	attendanceerrors "face-logbook/internal/attendance/errors"
	"face-logbook/internal/shared/apperror"
	"face-logbook/internal/shared/clock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *service) civilDate(date time.Time) time.Time {
	if date.IsZero() {
		date = s.clock.Now()
	}
	return clock.DateOf(date, s.clock.Location())
}

func (s *service) GetByDate(ctx context.Context, date time.Time) (DailyAttendanceResponse, error) {
	day := s.civilDate(date)
	rows, err := s.repo.FindAllByDate(ctx, day)
	if err != nil {
		s.logger.Error("list attendance by date failed", zap.Time("date", day), zap.Error(err))
		return DailyAttendanceResponse{}, apperror.Persistence(err)
	}

	resp := DailyAttendanceResponse{
		Date:       clock.FormatDate(day),
		Attendance: make([]AttendanceResponse, len(rows)),
	}
	for i, r := range rows {
		resp.Attendance[i] = mapToResponse(r)
	}
	return resp, nil
}

func (s *service) GetHistory(ctx context.Context, identityID string) (HistoryResponse, error) {
	if identityID == "" {
		return HistoryResponse{}, attendanceerrors.ErrInvalidIdentityID
	}
	ident, err := s.identities.FindByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HistoryResponse{}, attendanceerrors.ErrIdentityNotFound
		}
		return HistoryResponse{}, apperror.Persistence(err)
	}

	rows, err := s.repo.FindHistory(ctx, identityID)
	if err != nil {
		s.logger.Error("list attendance history failed", zap.String("identity_id", identityID), zap.Error(err))
		return HistoryResponse{}, apperror.Persistence(err)
	}

	resp := HistoryResponse{
		IdentityID: ident.ID,
		Name:       ident.Name,
		History:    make([]AttendanceResponse, len(rows)),
	}
	for i, r := range rows {
		item := mapToResponse(r)
		item.Name = ident.Name
		resp.History[i] = item
	}
	return resp, nil
}

// GetRosterStatus lists every identity of the roster (or of one group) with
// its record for the day, defaulting to absent when none exists.
func (s *service) GetRosterStatus(ctx context.Context, date time.Time, groupID string) (RosterStatusResponse, error) {
	day := s.civilDate(date)

	roster, err := s.identities.ListByGroup(ctx, groupID)
	if err != nil {
		return RosterStatusResponse{}, apperror.Persistence(err)
	}
	rows, err := s.repo.FindAllByDate(ctx, day)
	if err != nil {
		return RosterStatusResponse{}, apperror.Persistence(err)
	}

	byIdentity := make(map[string]Attendance, len(rows))
	for _, r := range rows {
		byIdentity[r.IdentityID] = r
	}

	resp := RosterStatusResponse{
		Date:       clock.FormatDate(day),
		GroupID:    groupID,
		Total:      len(roster),
		Identities: make([]AttendanceResponse, 0, len(roster)),
	}
	for _, ident := range roster {
		rec, ok := byIdentity[ident.ID]
		if !ok {
			rec = Attendance{IdentityID: ident.ID, AttendanceDate: day, Status: StatusAbsent}
		}
		item := mapToResponse(rec)
		item.Name = ident.Name
		if rec.Status == StatusPresent {
			resp.PresentCount++
		} else {
			resp.AbsentCount++
		}
		resp.Identities = append(resp.Identities, item)
	}
	return resp, nil
}
