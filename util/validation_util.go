// api/util/validation_util.go

package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dev-anuragk/assistly/api/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{validate: validator.New()}
}

func (v *ValidationUtil) ValidateUser(user model.User) error {
	if err := v.validate.Var(user.Email, "required,email"); err != nil {
		return fmt.Errorf("user email is invalid")
	}
	if user.FirstName == "" {
		return fmt.Errorf("user first name cannot be empty")
	}
	if !user.Role.IsValid() {
		return fmt.Errorf("unknown role: %s", user.Role)
	}
	if user.Status != "" && !user.Status.IsValid() {
		return fmt.Errorf("unknown status: %s", user.Status)
	}
	return nil
}

func (v *ValidationUtil) ValidatePassword(password string) error {
	if err := v.validate.Var(password, "required,min=8"); err != nil {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

func (v *ValidationUtil) ValidateOrganization(organization model.Organization) error {
	if organization.Name == "" {
		return fmt.Errorf("organization name cannot be empty")
	}
	if organization.Domain != "" {
		if err := v.validate.Var(organization.Domain, "fqdn"); err != nil {
			return fmt.Errorf("organization domain is invalid")
		}
	}
	for _, role := range organization.Settings.AllowedRoles {
		if !role.IsValid() {
			return fmt.Errorf("unknown role in allowed roles: %s", role)
		}
	}
	return nil
}

func (v *ValidationUtil) ValidateChat(chat model.Chat) error {
	if chat.Title == "" {
		return fmt.Errorf("chat title cannot be empty")
	}
	if chat.UserID == "" {
		return fmt.Errorf("chat user ID cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateDocument(doc model.Document) error {
	if doc.FileName == "" {
		return fmt.Errorf("document file name cannot be empty")
	}
	if doc.UploadedBy == "" {
		return fmt.Errorf("document uploader cannot be empty")
	}
	switch doc.AccessLevel {
	case model.AccessPublic, model.AccessRoleBased, model.AccessPrivate:
	default:
		return fmt.Errorf("unknown access level: %s", doc.AccessLevel)
	}
	for _, role := range doc.AllowedRoles {
		if !role.IsValid() {
			return fmt.Errorf("unknown role in allowed roles: %s", role)
		}
	}
	return nil
}
