package model

import "time"

type Organization struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Domain      string               `json:"domain"`
	AdminUserID string               `json:"admin_user_id"`
	Settings    OrganizationSettings `json:"settings"`
	IsActive    bool                 `json:"is_active"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type OrganizationSettings struct {
	MaxUsers     int      `json:"max_users"`
	AllowedRoles []Role   `json:"allowed_roles"`
	Features     []string `json:"features"`
}
