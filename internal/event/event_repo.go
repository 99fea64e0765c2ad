package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=event_repo.go -destination=mock/event_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	List(ctx context.Context, from, to *time.Time) ([]Event, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var e Event
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns events on or between the given days; nil bounds are open.
func (r *repository) List(ctx context.Context, from, to *time.Time) ([]Event, error) {
	db := r.db.WithContext(ctx)
	if from != nil {
		db = db.Where("date >= ?", *from)
	}
	if to != nil {
		db = db.Where("date <= ?", *to)
	}

	var rows []Event
	err := db.
		Order("date ASC").
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", id).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Event{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
