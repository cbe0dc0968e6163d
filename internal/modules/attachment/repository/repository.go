package repository

import (
	"anoa.com/fedipost/internal/entity"
	"anoa.com/fedipost/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxAttachments is the number of distinct positions an order value can hold.
const MaxAttachments = 256

// NewAttachment is one post_files row.
type NewAttachment struct {
	PostID uuid.UUID
	FileID uuid.UUID
	Order  uint8
}

type AttachmentRepository interface {
	// FindFile returns nil without error when the file does not exist.
	FindFile(dbc dbctx.Context, id uuid.UUID) (*entity.File, error)
	Attach(dbc dbctx.Context, attachment NewAttachment) error
	// FindByPostID returns the post's attachments in display order.
	FindByPostID(dbc dbctx.Context, postID uuid.UUID) ([]entity.PostFile, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) FindFile(dbc dbctx.Context, id uuid.UUID) (*entity.File, error) {
	var files []entity.File
	if err := dbc.DB(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&files).Error; err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return &files[0], nil
}

func (r *attachmentRepository) Attach(dbc dbctx.Context, attachment NewAttachment) error {
	row := &entity.PostFile{
		PostID: attachment.PostID,
		FileID: attachment.FileID,
		Order:  attachment.Order,
	}
	return dbc.DB(r.db).Omit(clause.Associations).Create(row).Error
}

func (r *attachmentRepository) FindByPostID(dbc dbctx.Context, postID uuid.UUID) ([]entity.PostFile, error) {
	var attachments []entity.PostFile
	err := dbc.DB(r.db).
		Preload("File").
		Where("post_id = ?", postID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Find(&attachments).Error
	return attachments, err
}
