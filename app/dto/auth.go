package dto

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// usernameRE allows a-z 0-9 . _ - with no leading, trailing, or doubled
// separator. Go's regexp has no lookaheads, so the shape is expressed as
// alnum runs joined by single separators.
var usernameRE = regexp.MustCompile(`^[a-z0-9]+([._-][a-z0-9]+)*$`)

// passwordRE covers all visible ASCII, no spaces.
var passwordRE = regexp.MustCompile(`^[\x21-\x7E]+$`)

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Normalize lowercases and trims the identity fields before validation, so
// "ALICE " and "alice" name the same account.
func (r *SignupRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required,
			validation.Length(3, 32),
			validation.Match(usernameRE).Error("may contain a-z, 0-9, dot, underscore, hyphen; cannot start/end with or repeat separators"),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 64),
			validation.Match(passwordRE).Error("must be visible ASCII with no spaces"),
		),
		validation.Field(&r.Email,
			validation.Required,
			validation.Length(0, 255),
			is.Email,
		),
	)
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *SigninRequest) Normalize() {
	r.Username = strings.ToLower(strings.TrimSpace(r.Username))
}

func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 32)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 64)),
	)
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Role      string `json:"role"`
	// Warning carries the soft mail-send failure: the account exists but the
	// verification email did not go out.
	Warning string `json:"warning,omitempty"`
}
