package models

type Company struct {
	BaseModel
	Name        string `gorm:"not null;index" json:"name"`
	Description string `json:"description"`

	// Relations
	Users    []User    `gorm:"foreignKey:CompanyID" json:"-"`
	JobRoles []JobRole `gorm:"foreignKey:CompanyID" json:"-"`
}

// DefaultCompanyName is the company auto-created for employees registered
// without an explicit company.
const DefaultCompanyName = "Default Company"
