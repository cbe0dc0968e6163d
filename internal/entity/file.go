package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is an uploaded file. Upload itself happens elsewhere; posts only
// reference existing rows.
type File struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MediaType string    `gorm:"size:255;not null" json:"media_type"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Alt       *string   `gorm:"type:text" json:"alt,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *File) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}

// PostFile attaches a File to a Post at a display position.
type PostFile struct {
	PostID uuid.UUID `gorm:"type:uuid;primaryKey" json:"post_id"`
	Post   *Post     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	FileID uuid.UUID `gorm:"type:uuid;primaryKey" json:"file_id"`
	File   File      `gorm:"constraint:OnDelete:CASCADE" json:"file"`
	Order  uint8     `gorm:"column:order;not null" json:"order"`
}
