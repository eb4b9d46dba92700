package app

import (
	"context"
	"fmt"

	"face-logbook/internal/attendance"
	"face-logbook/internal/identity"

	"gorm.io/gorm"
)

const outboxDDL = `
CREATE TABLE IF NOT EXISTS attendance_outbox (
	id             uuid PRIMARY KEY,
	aggregate_type varchar(50)  NOT NULL,
	aggregate_id   varchar(100) NOT NULL,
	event_type     varchar(100) NOT NULL,
	topic          varchar(200) NOT NULL,
	payload        jsonb        NOT NULL,
	status         varchar(20)  NOT NULL,
	retry_count    int          NOT NULL DEFAULT 0,
	error_message  text,
	next_retry_at  timestamptz,
	processed_at   timestamptz,
	created_at     timestamptz  NOT NULL DEFAULT now(),
	updated_at     timestamptz  NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_attendance_outbox_pending
	ON attendance_outbox (status, next_retry_at, created_at);
`

// Migrate creates the engine's tables. The identities table is normally
// owned by the enrolment service and is only created when missing.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	if err := db.AutoMigrate(&identity.Identity{}, &attendance.Attendance{}); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	if err := db.Exec(outboxDDL).Error; err != nil {
		return fmt.Errorf("migrate outbox: %w", err)
	}
	return nil
}
