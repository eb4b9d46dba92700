package attendance

import (
	"context"
	"database/sql"
	"time"

	"face-logbook/internal/shared/clock"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByIdentityAndDate(ctx context.Context, identityID string, date time.Time) (*Attendance, error)
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	ResetForDate(ctx context.Context, identityIDs []string, date time.Time) (int64, error)
	FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error)
	FindHistory(ctx context.Context, identityID string) ([]Attendance, error)
}

type repository struct {
	db  *gorm.DB
	tx  *sql.Tx
	loc *time.Location
}

// NewRepository stores and reads timestamps as wall-clock values in loc.
func NewRepository(db *gorm.DB, loc *time.Location) Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &repository{db: db, loc: loc}
}

// WithTx binds the repository to tx so that every statement joins the
// caller's unit of work.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	if tx == nil {
		return r
	}
	conn := r.db.Session(&gorm.Session{
		Context:                context.Background(),
		NewDB:                  true,
		SkipDefaultTransaction: true,
	})
	conn.Statement.ConnPool = tx
	return &repository{db: conn, tx: tx, loc: r.loc}
}

// FindByIdentityAndDate returns gorm.ErrRecordNotFound when no record exists.
// Inside a transaction the row is locked until commit so that concurrent
// detections for the same identity are applied one after another.
func (r *repository) FindByIdentityAndDate(ctx context.Context, identityID string, date time.Time) (*Attendance, error) {
	q := r.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Where("attendance_date = ?", clock.FormatDate(date))
	if r.tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row Attendance
	if err := q.First(&row).Error; err != nil {
		return nil, err
	}
	r.localize(&row)
	return &row, nil
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	row := r.naive(a)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return err
	}
	a.CreatedAt = row.CreatedAt
	a.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	row := r.naive(a)
	err := r.db.WithContext(ctx).
		Model(&Attendance{ID: a.ID}).
		Select("status", "in_time", "out_time", "updated_at").
		Updates(&row).Error
	if err != nil {
		return err
	}
	a.UpdatedAt = row.UpdatedAt
	return nil
}

// ResetForDate sets every listed identity to absent for date, creating the
// missing records, in a single upsert.
func (r *repository) ResetForDate(ctx context.Context, identityIDs []string, date time.Time) (int64, error) {
	if len(identityIDs) == 0 {
		return 0, nil
	}

	day := clock.Naive(clock.DateOf(date, r.loc), r.loc)
	rows := make([]Attendance, 0, len(identityIDs))
	for _, id := range identityIDs {
		rows = append(rows, Attendance{
			ID:             uuid.New(),
			IdentityID:     id,
			AttendanceDate: day,
			Status:         StatusAbsent,
		})
	}

	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "identity_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     StatusAbsent,
				"in_time":    nil,
				"out_time":   nil,
				"updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(&rows)
	return res.RowsAffected, res.Error
}

func (r *repository) FindAllByDate(ctx context.Context, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Preload("Identity").
		Where("attendance_date = ?", clock.FormatDate(date)).
		Order("identity_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		r.localize(&rows[i])
	}
	return rows, nil
}

func (r *repository) FindHistory(ctx context.Context, identityID string) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Order("attendance_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		r.localize(&rows[i])
	}
	return rows, nil
}

func (r *repository) localize(a *Attendance) {
	a.AttendanceDate = clock.Localize(a.AttendanceDate, r.loc)
	a.InTime = clock.LocalizePtr(a.InTime, r.loc)
	a.OutTime = clock.LocalizePtr(a.OutTime, r.loc)
}

func (r *repository) naive(a *Attendance) Attendance {
	row := *a
	row.Identity = nil
	row.AttendanceDate = clock.Naive(clock.DateOf(a.AttendanceDate, r.loc), r.loc)
	row.InTime = clock.NaivePtr(a.InTime, r.loc)
	row.OutTime = clock.NaivePtr(a.OutTime, r.loc)
	return row
}
