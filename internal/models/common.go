package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"lastUpdated"`
}

// BeforeCreate assigns a UUID when the caller did not.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// JSONMap stores a free-form key/value document in a jsonb column.
type JSONMap = datatypes.JSONMap

// CloneJSONMap returns a shallow copy, so memory-mode repositories never
// hand out aliased maps.
func CloneJSONMap(m JSONMap) JSONMap {
	out := make(JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
