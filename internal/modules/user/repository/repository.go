package repository

import (
	"anoa.com/fedipost/internal/entity"
	"anoa.com/fedipost/pkg/dbctx"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	// FindByID returns nil without error when the user does not exist.
	FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(dbc dbctx.Context, id uuid.UUID) (*entity.User, error) {
	var users []entity.User
	if err := dbc.DB(r.db).
		Where("id = ?", id).
		Limit(1).
		Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}
