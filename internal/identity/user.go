package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// User is the local projection of an identity-provider account. Requests
// join it for display names only.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(150);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);index:idx_users_email"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:EMPLOYEE"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UpsertUser inserts u or refreshes name, email and role of an existing row.
func UpsertUser(ctx context.Context, db *gorm.DB, u *User) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "updated_at"}),
		}).
		Create(u).Error
}
