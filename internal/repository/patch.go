package repository

import (
	"barber-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// applyPatch updates only the columns named in patch for the row with the given id.
// It returns gorm.ErrRecordNotFound when no such row exists.
func applyPatch[T any](db *gorm.DB, id uuid.UUID, patch model.Patch) error {
	var row T
	if err := db.Select("id").First(&row, "id = ?", id).Error; err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}
	return db.Model(new(T)).Where("id = ?", id).Updates(map[string]interface{}(patch)).Error
}

// deleteByID hard-deletes one row and reports gorm.ErrRecordNotFound when nothing matched.
func deleteByID[T any](db *gorm.DB, id uuid.UUID) error {
	res := db.Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
