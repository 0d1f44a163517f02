package dto

import "time"

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,min=3,max=16"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8,max=16"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	PhoneNumber          string `json:"phone_number" validate:"required"`
	Image                string `json:"image" validate:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PropertyCheckRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name" validate:"omitempty,min=3,max=16"`
}

type SendAuthEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyAuthEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword  string `json:"current_password" validate:"required"`
	NewPassword      string `json:"new_password" validate:"required,min=8,max=16"`
	NewPasswordCheck string `json:"new_password_check" validate:"required,eqfield=NewPassword"`
}

type UpdateProfileRequest struct {
	PhoneNumber string `json:"phone_number" validate:"omitempty"`
	Image       string `json:"image" validate:"omitempty"`
}

// UserResponse is the public profile. The password hash never leaves the
// service layer.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone_number,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileSummary is the minimal projection returned on login.
type ProfileSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type LoginResponse struct {
	User ProfileSummary `json:"user"`
}

// VerifyResult is the tri-state outcome of an email code check.
type VerifyResult struct {
	Status string `json:"status"` // ok | expired | mismatch
}
