package model

import "time"

// DocumentAccessLevel controls who inside the owning organization may read a
// document's metadata and content.
type DocumentAccessLevel string

const (
	AccessPublic    DocumentAccessLevel = "PUBLIC"     // all users in the organization
	AccessRoleBased DocumentAccessLevel = "ROLE_BASED" // allow-listed roles only
	AccessPrivate   DocumentAccessLevel = "PRIVATE"    // allow-listed users only
)

type Document struct {
	ID             string              `json:"id"`
	OrganizationID string              `json:"organization_id"`
	UploadedBy     string              `json:"uploaded_by"`
	FileName       string              `json:"file_name"`
	OriginalName   string              `json:"original_name"`
	FilePath       string              `json:"file_path"`
	FileSize       int64               `json:"file_size"`
	MimeType       string              `json:"mime_type"`
	AccessLevel    DocumentAccessLevel `json:"access_level"`
	AllowedRoles   []Role              `json:"allowed_roles"`
	AllowedUsers   []string            `json:"allowed_users"`
	Metadata       DocumentMetadata    `json:"metadata"`
	IsProcessed    bool                `json:"is_processed"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type DocumentMetadata struct {
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category,omitempty"`
}

// CanBeAccessedBy evaluates the document's access level against a user inside
// the same organization. Cross-organization checks happen before this.
func (d *Document) CanBeAccessedBy(userID string, role Role) bool {
	if role == RoleSuperAdmin || d.UploadedBy == userID {
		return true
	}
	// CEO and MANAGER administer every document in their organization.
	if role.In(RoleCEO, RoleManager) {
		return true
	}
	switch d.AccessLevel {
	case AccessPublic:
		return true
	case AccessRoleBased:
		return role.In(d.AllowedRoles...)
	case AccessPrivate:
		for _, id := range d.AllowedUsers {
			if id == userID {
				return true
			}
		}
	}
	return false
}
