package timeentry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *TimeEntry) error
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*TimeEntry, error)
	Close(ctx context.Context, id uuid.UUID, clockOut time.Time) (int64, error)
	ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]TimeEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.conn(ctx).Create(e).Error
}

// FindOpenByUser returns the most recent open entry, or gorm.ErrRecordNotFound.
func (r *repository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*TimeEntry, error) {
	var e TimeEntry
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Where("clock_out IS NULL").
		Order("clock_in DESC").
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Close sets clock_out on a still-open entry and reports the rows touched;
// zero means another request closed it first.
func (r *repository) Close(ctx context.Context, id uuid.UUID, clockOut time.Time) (int64, error) {
	res := r.conn(ctx).
		Model(&TimeEntry{}).
		Where("id = ?", id).
		Where("clock_out IS NULL").
		Updates(map[string]any{
			"clock_out":  clockOut,
			"updated_at": clockOut,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Where("clock_in >= ?", since).
		Order("clock_in ASC").
		Find(&rows).Error
	return rows, err
}
