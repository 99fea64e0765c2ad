package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	ListByTimeOff(ctx context.Context, timeOffID uuid.UUID) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) ListByTimeOff(ctx context.Context, timeOffID uuid.UUID) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).
		Where("time_off_id = ?", timeOffID).
		Order("occurred_at ASC").
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
