package models

type User struct {
	BaseModel
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	FullName       string     `gorm:"not null" json:"fullName"`
	PasswordHash   string     `json:"-"`
	TelegramChatID string     `json:"telegramChatId,omitempty"`
	ActivationCode string     `gorm:"uniqueIndex" json:"activationCode,omitempty"`
	Status         UserStatus `gorm:"type:varchar(20);default:'invited'" json:"status"`
	RoleID         *string    `gorm:"type:uuid" json:"role,omitempty"`
	CompanyID      *string    `gorm:"type:uuid;index" json:"companyId,omitempty"`

	// Relations
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Profile *Profile `gorm:"foreignKey:UserID" json:"-"`
}

// IsCompany reports whether the account is a company account.
func (u *User) IsCompany() bool {
	return u.Status == UserStatusCompany
}

// APIRole maps the persisted status to the role carried in tokens.
func (u *User) APIRole() string {
	if u.IsCompany() {
		return APIRoleCompany
	}
	return APIRoleEmployee
}
