package timeoff

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timeoff_repo.go -destination=mock/timeoff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *TimeOffRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*TimeOffRequest, error)
	ListOverlapping(ctx context.Context, from time.Time, to *time.Time, deniedCutoff time.Time) ([]TimeOffRequest, error)
	ListForDay(ctx context.Context, day time.Time, deniedCutoff time.Time) ([]TimeOffRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

// visible drops denied requests that ended before the cutoff day.
func visible(db *gorm.DB, deniedCutoff time.Time) *gorm.DB {
	return db.Where("NOT (status = ? AND end_date < ?)", StatusDenied, deniedCutoff)
}

func (r *repository) Create(ctx context.Context, req *TimeOffRequest) error {
	return r.conn(ctx).Omit("User").Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*TimeOffRequest, error) {
	var req TimeOffRequest
	err := r.conn(ctx).
		Preload("User").
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListOverlapping returns requests with start <= to and end >= from; a nil
// to leaves the range open ended.
func (r *repository) ListOverlapping(ctx context.Context, from time.Time, to *time.Time, deniedCutoff time.Time) ([]TimeOffRequest, error) {
	db := r.conn(ctx).
		Preload("User").
		Where("end_date >= ?", from)
	if to != nil {
		db = db.Where("start_date <= ?", *to)
	}

	var rows []TimeOffRequest
	err := visible(db, deniedCutoff).
		Order("start_date ASC").
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListForDay(ctx context.Context, day time.Time, deniedCutoff time.Time) ([]TimeOffRequest, error) {
	db := r.conn(ctx).
		Preload("User").
		Where("start_date <= ?", day).
		Where("end_date >= ?", day)

	var rows []TimeOffRequest
	err := visible(db, deniedCutoff).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
	res := r.conn(ctx).
		Model(&TimeOffRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": decidedAt,
			"updated_at": decidedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.conn(ctx).Delete(&TimeOffRequest{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
