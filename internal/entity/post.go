package entity

import (
	"time"

	"github.com/google/uuid"
)

// Visibility is the storage vocabulary for who may see a post.
type Visibility string

const (
	VisibilityPublic        Visibility = "public"
	VisibilityHome          Visibility = "home"
	VisibilityFollowers     Visibility = "followers"
	VisibilityDirectMessage Visibility = "direct_message"
)

type Post struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	ReplyID     *uuid.UUID `gorm:"type:uuid;index" json:"reply_id,omitempty"`
	Reply       *Post      `gorm:"foreignKey:ReplyID;constraint:OnDelete:SET NULL" json:"-"`
	Text        string     `gorm:"type:text;not null" json:"text"`
	Title       *string    `gorm:"type:text" json:"title,omitempty"`
	UserID      *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User        *User      `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Visibility  Visibility `gorm:"size:20;not null" json:"visibility"`
	IsSensitive bool       `gorm:"not null;default:false" json:"is_sensitive"`
	URI         string     `gorm:"type:text;not null;uniqueIndex" json:"uri"`
}
