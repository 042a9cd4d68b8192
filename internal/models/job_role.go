package models

// JobRole is a company-defined position that can be assigned to a Profile.
type JobRole struct {
	BaseModel
	Title        string  `gorm:"not null" json:"title"`
	Description  string  `json:"description"`
	Requirements JSONMap `gorm:"type:jsonb;default:'{}'" json:"requirements"`
	CompanyID    *string `gorm:"type:uuid;index" json:"companyId,omitempty"`
}
