package rsvp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rsvp_repo.go -destination=mock/rsvp_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, r *Rsvp) error
	FindByID(ctx context.Context, id uuid.UUID) (*Rsvp, error)
	ListEventIDsByUser(ctx context.Context, userID uuid.UUID) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteByEvent(ctx context.Context, eventID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, row *Rsvp) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Rsvp, error) {
	var row Rsvp
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListEventIDsByUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	eventIDs := []string{}
	err := r.db.WithContext(ctx).
		Model(&Rsvp{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("event_id", &eventIDs).Error
	return eventIDs, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Rsvp{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByEvent(ctx context.Context, eventID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Rsvp{}, "event_id = ?", eventID)
	return res.RowsAffected, res.Error
}
