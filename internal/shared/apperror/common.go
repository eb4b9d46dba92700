package apperror

import "net/http"

var (
	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrPersistence = New(
		CodePersistence,
		"Attendance storage is unavailable",
		http.StatusInternalServerError,
	)

	ErrSchedulerTask = New(
		CodeSchedulerTask,
		"Scheduled attendance task failed",
		http.StatusInternalServerError,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
)

// Persistence wraps a storage failure so callers can map it to a server error.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if As(err, &appErr) {
		return err
	}
	return Wrap(err, CodePersistence, ErrPersistence.Message, ErrPersistence.HTTPStatus)
}
