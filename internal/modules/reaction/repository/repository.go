package repository

import (
	"anoa.com/fedipost/internal/entity"
	"anoa.com/fedipost/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionRepository interface {
	// FindByPostID returns the post's reactions with the reacting user
	// preloaded when there is one.
	FindByPostID(dbc dbctx.Context, postID uuid.UUID) ([]entity.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) FindByPostID(dbc dbctx.Context, postID uuid.UUID) ([]entity.Reaction, error) {
	var reactions []entity.Reaction
	err := dbc.DB(r.db).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&reactions).Error
	return reactions, err
}
