package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a local or remote account, identified by handle and host.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Handle    string    `gorm:"size:255;not null;uniqueIndex:idx_users_handle_host,priority:1" json:"handle"`
	Host      string    `gorm:"size:255;not null;uniqueIndex:idx_users_handle_host,priority:2" json:"host"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
