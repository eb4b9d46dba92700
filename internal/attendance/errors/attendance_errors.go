package attendanceerrors

import (
	"face-logbook/internal/shared/apperror"
	"net/http"
)

var (
	ErrDuplicateAttendance = apperror.New(
		apperror.CodeConflict,
		"Attendance record already exists for this identity and date",
		http.StatusConflict,
	)
	ErrIdentityNotFound = apperror.New(
		apperror.CodeNotFound,
		"Identity not found in roster",
		http.StatusNotFound,
	)
	ErrInvalidIdentityID = apperror.New(
		apperror.CodeInvalidInput,
		"Identity ID is required",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be in ISO format (YYYY-MM-DD)",
		http.StatusBadRequest,
	)
)
