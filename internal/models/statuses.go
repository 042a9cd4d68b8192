package models

type UserStatus string
type ProfileStatus string

const (
	// A user created by a company holds an activation code and stays
	// invited until the first activation-code login.
	UserStatusInvited UserStatus = "invited"
	UserStatusActive  UserStatus = "active"
	UserStatusCompany UserStatus = "company"

	ProfileStatusPending   ProfileStatus = "PENDING"
	ProfileStatusCompleted ProfileStatus = "COMPLETED"
)

// API-level roles derived from the user status. RoleID on User is a
// job-role reference, not one of these.
const (
	APIRoleCompany  = "COMPANY"
	APIRoleEmployee = "EMPLOYEE"
)
