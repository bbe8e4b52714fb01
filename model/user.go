package model

import "time"

type UserStatus string

const (
	StatusActive    UserStatus = "ACTIVE"
	StatusInactive  UserStatus = "INACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Password       string     `json:"-"` // bcrypt hash, never serialized
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Role           Role       `json:"role"`
	Status         UserStatus `json:"status"`
	OrganizationID string     `json:"organization_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
}

type UserSearchCriteria struct {
	Email          string     `json:"email,omitempty"`
	Role           Role       `json:"role,omitempty"`
	Status         UserStatus `json:"status,omitempty"`
	OrganizationID string     `json:"organization_id,omitempty"`
	Page           int        `json:"page,omitempty"`
	Limit          int        `json:"limit,omitempty"`
	SortBy         string     `json:"sort_by,omitempty"`
	SortOrder      string     `json:"sort_order,omitempty"`
}
