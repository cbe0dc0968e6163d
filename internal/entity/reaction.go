package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reaction struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PostID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"post_id"`
	Post    *Post      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID  *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User    *User      `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Content string     `gorm:"type:text;not null" json:"content"`
	// Custom emoji descriptor. Both columns are expected to be set together.
	EmojiMediaType *string   `gorm:"size:255" json:"emoji_media_type,omitempty"`
	EmojiImageURL  *string   `gorm:"type:text" json:"emoji_image_url,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
