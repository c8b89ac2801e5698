package models

import "time"

type User struct {
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"` // "user" or "admin"
	Picture   string    `json:"image,omitempty"`
	IsBlocked bool      `json:"isBlocked"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// -------- Auth payloads --------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	// OAuth access token obtained from the Google consent flow; the
	// backend exchanges it for the user profile.
	Token string `json:"token"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Picture   string `json:"image,omitempty"`
}

type ChangeOwnPasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ResetPasswordRequest completes the forgot-password flow started by
// GET /api/users/send-otp/:email.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         int    `json:"otp"`
	NewPassword string `json:"newPassword"`
}
