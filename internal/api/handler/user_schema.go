package handler

import (
	"encoding/json"

	"github.com/mka-platform/lms-api/internal/core/domain"
	"github.com/mka-platform/lms-api/internal/core/ports"
)

// registerRequest is the POST /auth/register payload. Skills is accepted in
// whatever shape the front-end sends (array or stringified array) and
// coerced in the core.
type registerRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Role     string          `json:"role" validate:"omitempty,oneof=Admin Trainer Student"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	Location string          `json:"location"`
	About    string          `json:"about"`
	Skills   json.RawMessage `json:"skills"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:    r.Email,
		Role:     r.Role,
		Name:     r.Name,
		Phone:    r.Phone,
		Location: r.Location,
		About:    r.About,
		Skills:   r.Skills,
	}
}

// registerResponse reports the provisioned user plus how durable the write
// was and whether the welcome email went out.
type registerResponse struct {
	User     domain.User `json:"user"`
	Mode     string      `json:"mode"`
	Notified bool        `json:"notified"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// updateUserRequest is the PATCH payload. Pointer fields distinguish "not
// sent" from "set to empty"; only present fields are applied.
type updateUserRequest struct {
	Name     *string         `json:"name"`
	Phone    *string         `json:"phone"`
	Location *string         `json:"location"`
	About    *string         `json:"about"`
	Skills   json.RawMessage `json:"skills"`
}

func (r updateUserRequest) toInput() ports.UpdateInput {
	return ports.UpdateInput{
		Name:     r.Name,
		Phone:    r.Phone,
		Location: r.Location,
		About:    r.About,
		Skills:   r.Skills,
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
