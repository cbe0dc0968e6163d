package repository

import (
	"context"
	"time"

	"anoa.com/fedipost/internal/entity"
	"anoa.com/fedipost/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewPost is the complete row for a post insert. It is built once and never
// patched field by field.
type NewPost struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	ReplyID     *uuid.UUID
	Text        string
	Title       *string
	UserID      *uuid.UUID
	Visibility  entity.Visibility
	IsSensitive bool
	URI         string
}

type PostRepository interface {
	// Transaction opens one database transaction for a mutation.
	Transaction(ctx context.Context, fn func(dbc dbctx.Context) error) error
	Create(dbc dbctx.Context, post NewPost) (*entity.Post, error)
	// FindByID returns nil without error when the post does not exist.
	FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.Post, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Transaction(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return dbctx.Transaction(ctx, r.db, fn)
}

func (r *postRepository) Create(dbc dbctx.Context, newPost NewPost) (*entity.Post, error) {
	post := &entity.Post{
		ID:          newPost.ID,
		CreatedAt:   newPost.CreatedAt,
		ReplyID:     newPost.ReplyID,
		Text:        newPost.Text,
		Title:       newPost.Title,
		UserID:      newPost.UserID,
		Visibility:  newPost.Visibility,
		IsSensitive: newPost.IsSensitive,
		URI:         newPost.URI,
	}
	if err := dbc.DB(r.db).Omit(clause.Associations).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *postRepository) FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.Post, error) {
	// Find with a slice avoids gorm's "record not found" log noise from First()
	var posts []entity.Post
	if err := dbc.DB(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return &posts[0], nil
}

// Delete removes the post row. Attachments and reactions go with it through
// the foreign key cascade; replies keep existing with reply_id cleared.
func (r *postRepository) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.DB(r.db).Delete(&entity.Post{}, "id = ?", id).Error
}
