package repository

import (
	"time"

	"barber-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByUsername(username string) (*model.User, error)
	FindByID(id uuid.UUID) (*model.User, error)
	FindAll() ([]model.User, error)
	Count() (int64, error)
	Create(user *model.User) error
	Update(id uuid.UUID, patch model.Patch) error
	UpdateLastLogin(id uuid.UUID, at time.Time) error
	Delete(id uuid.UUID) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.User{}).Count(&n).Error
	return n, err
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(id uuid.UUID, patch model.Patch) error {
	return applyPatch[model.User](r.db, id, patch)
}

func (r *userRepo) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

func (r *userRepo) Delete(id uuid.UUID) error {
	return deleteByID[model.User](r.db, id)
}
