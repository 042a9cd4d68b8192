package models

// Profile is the career/skills record associated 1:1 with a User.
type Profile struct {
	BaseModel
	UserID      string        `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	ProfileData JSONMap       `gorm:"type:jsonb;default:'{}'" json:"profileData"`
	CompanyID   *string       `gorm:"type:uuid;index" json:"companyId,omitempty"`
	Status      ProfileStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
}

// IsCompleted reports whether a job role has been assigned.
func (p *Profile) IsCompleted() bool {
	return p.Status == ProfileStatusCompleted
}

// MergeProfileData merges new fields into the existing document.
func (p *Profile) MergeProfileData(data JSONMap) {
	if p.ProfileData == nil {
		p.ProfileData = JSONMap{}
	}
	for k, v := range data {
		p.ProfileData[k] = v
	}
}

// AssignedRoleID returns profileData.assignedRoleId when set.
func (p *Profile) AssignedRoleID() string {
	if p.ProfileData == nil {
		return ""
	}
	if id, ok := p.ProfileData["assignedRoleId"].(string); ok {
		return id
	}
	return ""
}

// SetJobRoleData merges the role snapshot into profileData and completes
// the profile. This is the PENDING -> COMPLETED transition.
func (p *Profile) SetJobRoleData(role *JobRole) {
	requirements := role.Requirements
	if requirements == nil {
		requirements = JSONMap{}
	}
	p.MergeProfileData(JSONMap{
		"currentPosition": role.Title,
		"jobRoleData":     requirements,
		"assignedRoleId":  role.ID,
		"description":     role.Description,
	})
	p.Status = ProfileStatusCompleted
}
