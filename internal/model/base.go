package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID) and standard Audit Trails
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Audit User Tracking
	CreatedBy string `gorm:"type:varchar(100)" json:"created_by,omitempty"`
	UpdatedBy string `gorm:"type:varchar(100)" json:"updated_by,omitempty"`
}

// BeforeCreate assigns a UUID unless one was supplied (imports keep their ids).
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// Patch maps column names to new values for a partial update.
type Patch map[string]interface{}

// Set records a column only when the value pointer is non-nil.
func Set[T any](p Patch, column string, v *T) {
	if v != nil {
		p[column] = *v
	}
}

func (p Patch) Empty() bool {
	return len(p) == 0
}
