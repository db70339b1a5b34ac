package repository

import (
	"barber-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindByID(id uuid.UUID) (*model.Category, error)
	Update(id uuid.UUID, patch model.Patch) error
	CountProducts(id uuid.UUID) (int64, error)
	Delete(id uuid.UUID) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) WithTx(tx *gorm.DB) CategoryRepository {
	return &categoryRepo{tx}
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("name").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Update(id uuid.UUID, patch model.Patch) error {
	return applyPatch[model.Category](r.db, id, patch)
}

func (r *categoryRepo) CountProducts(id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.Model(&model.Product{}).Where("category_id = ?", id).Count(&n).Error
	return n, err
}

func (r *categoryRepo) Delete(id uuid.UUID) error {
	return deleteByID[model.Category](r.db, id)
}
