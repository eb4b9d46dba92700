package attendance

import (
	"errors"
	"strings"

	attendanceerrors "face-logbook/internal/attendance/errors"
	"face-logbook/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueAttendanceConstraint = "uq_attendance_identity_date"

// mapRepositoryError turns driver errors into engine errors. A unique
// violation on the (identity, date) key becomes ErrDuplicateAttendance; any
// other failure is a persistence error.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return attendanceerrors.ErrDuplicateAttendance
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if pgErr.ConstraintName == "" || pgErr.ConstraintName == uniqueAttendanceConstraint {
			return attendanceerrors.ErrDuplicateAttendance
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueAttendanceConstraint) {
		return attendanceerrors.ErrDuplicateAttendance
	}

	return apperror.Persistence(err)
}
