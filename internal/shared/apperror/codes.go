package apperror

const (
	// Caller errors
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"

	// Engine errors
	CodePersistence        = "PERSISTENCE_ERROR"
	CodeSchedulerTask      = "SCHEDULER_TASK_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
