package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Username     string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"username" validate:"required"`
	Email        string      `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Password     string      `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string      `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	RoleID       *uint       `gorm:"index" json:"role_id"`
	Role         *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`
	IsLocked     bool        `gorm:"default:false" json:"is_locked"`
	Privileges   []Privilege `gorm:"many2many:user_privileges;" json:"privileges,omitempty"`
	TokenVersion string      `gorm:"type:varchar(255);default:''" json:"-"` // single session enforcement
	LastSeenAt   *time.Time  `json:"last_seen_at,omitempty"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// GetPrivilegeCodes returns the user's own grants merged with the role's, without duplicates
func (u *User) GetPrivilegeCodes() []string {
	set := NewPermissionSet()
	for _, p := range u.Privileges {
		set[p.Code] = struct{}{}
	}
	if u.Role != nil {
		for _, p := range u.Role.Privileges {
			set[p.Code] = struct{}{}
		}
	}
	return set.List()
}

// RoleCode returns the role code or "" when no role is assigned.
func (u *User) RoleCode() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Code
}

// ToPrincipal flattens the user into the shape the console keeps in its session.
func (u *User) ToPrincipal() Principal {
	return Principal{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: u.FullName,
		Role:        u.RoleCode(),
		Permissions: NewPermissionSet(u.GetPrivilegeCodes()...),
	}
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID         uuid.UUID   `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	FullName   string      `json:"full_name"`
	RoleID     *uint       `json:"role_id,omitempty"`
	Role       *Role       `json:"role,omitempty"`
	IsActive   bool        `json:"is_active"`
	IsLocked   bool        `json:"is_locked"`
	LastSeenAt *time.Time  `json:"last_seen_at,omitempty"`
	Privileges []Privilege `json:"privileges"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		RoleID:     u.RoleID,
		Role:       u.Role,
		IsActive:   u.IsActive,
		IsLocked:   u.IsLocked,
		LastSeenAt: u.LastSeenAt,
		Privileges: u.Privileges,
	}
}
