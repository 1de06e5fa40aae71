package auth

import (
	"strings"

	"github.com/frahmantamala/skill-exchange/internal"
	"github.com/frahmantamala/skill-exchange/internal/core/common/validation"
)

// RegisterDTO is the body of POST /auth/register.
type RegisterDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Mobile     string `json:"mobile"`
	Age        *int   `json:"age"`
	Profession string `json:"profession"`
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d *RegisterDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = normalizeEmail(d.Email)
	d.Mobile = strings.TrimSpace(d.Mobile)
	d.Profession = strings.TrimSpace(d.Profession)
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("email", d.Email).Required().Email().MaxLength(254)
	v.Field("password", d.Password).Required().MinLength(validation.MinPasswordLength, internal.ErrCodeWeakPassword).
		MaxBytes(validation.MaxPasswordBytes, internal.ErrCodePasswordTooLong)
	v.Field("mobile", d.Mobile).MaxLength(32)
	v.Field("age", d.Age).IntRange(13, 120, internal.ErrCodeInvalidAge)
	v.Field("profession", d.Profession).MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks required fields.
func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d RefreshTokenDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
