package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleMaster     = "Master"
	RoleShooting   = "Shooting"
	RoleEditing    = "Editing"
	RoleConsulting = "Consulting"
	RoleOther      = "Other"
)

// StaffRoles are the roles a signup may request. Master is granted only by
// an administrator.
var StaffRoles = []string{RoleShooting, RoleEditing, RoleConsulting, RoleOther}

// SignupDateLayout is the layout of the signup_date column.
const SignupDateLayout = "2006-01-02 15:04:05"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotApproved        = errors.New("account pending approval")
)

// User models a studio staff member stored in the users worksheet.
type User struct {
	ID           string    `json:"id"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Approved     bool      `json:"approved"`
	SignupDate   time.Time `json:"signup_date"`
}

// IsStaffRole reports whether role is one of the staff subtypes.
func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsValidRole reports whether role can be assigned to a user.
func IsValidRole(role string) bool {
	return role == RoleMaster || IsStaffRole(role)
}

// FormatBool renders a boolean the way the worksheets store it.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// ParseBool reads a boolean-as-string cell. Anything other than a
// case-insensitive "true" is false.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
