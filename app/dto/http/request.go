package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

func (r *RegisterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.New("email must be valid and password must be at least 8 characters")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.New("email and password are required")
	}
	return nil
}

type LogoutRequest struct {
	SessionToken string `json:"session_token" validate:"required"`
}

func (r *LogoutRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.New("session_token is required")
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.New("a valid email is required")
	}
	return nil
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *ResetPasswordRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.New("token is required and password must be at least 8 characters")
	}
	return nil
}

type TodoCreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func (r *TodoCreateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.New("title is required")
	}
	return nil
}

type TodoUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Validate rejects empty patches and blank titles.
func (r *TodoUpdateRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.Completed == nil {
		return errors.New("at least one field must be provided")
	}
	if err := validate.Struct(r); err != nil {
		return errors.New("title must not be empty")
	}
	return nil
}
