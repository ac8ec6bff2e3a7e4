package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

type RoleChangeRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (r *RoleChangeRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
}

func (r RoleChangeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 32)),
		validation.Field(&r.Role, validation.Required),
	)
}
