package orderrequest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=orderrequest_repo.go -destination=mock/orderrequest_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, o *OrderRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*OrderRequest, error)
	List(ctx context.Context, ordered *bool) ([]OrderRequest, error)
	MarkOrdered(ctx context.Context, id, by uuid.UUID, at time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *OrderRequest) error {
	return r.db.WithContext(ctx).Omit("Requester").Create(o).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*OrderRequest, error) {
	var o OrderRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns the newest requests first; a nil ordered returns both open
// and fulfilled ones.
func (r *repository) List(ctx context.Context, ordered *bool) ([]OrderRequest, error) {
	db := r.db.WithContext(ctx).Preload("Requester")
	if ordered != nil {
		db = db.Where("ordered = ?", *ordered)
	}

	var rows []OrderRequest
	err := db.
		Order("created_at DESC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// MarkOrdered only touches open requests, so a second call affects nothing.
func (r *repository) MarkOrdered(ctx context.Context, id, by uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&OrderRequest{}).
		Where("id = ? AND ordered = ?", id, false).
		Updates(map[string]any{
			"ordered":    true,
			"ordered_by": by,
			"ordered_at": at,
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&OrderRequest{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
