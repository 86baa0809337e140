package models

import "encoding/json"

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role,omitempty" validate:"omitempty,oneof=Admin Student"`
	CohortID ID     `json:"cohort_id,omitempty"`
}

// RegisterResponse is returned by /auth/register.
type RegisterResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
}

// LoginResponse covers both login outcomes: a token/user pair or a
// second-factor challenge.
type LoginResponse struct {
	Token            string          `json:"token,omitempty"`
	User             json.RawMessage `json:"user,omitempty"`
	TwoFactorEnabled bool            `json:"two_factor_enabled,omitempty"`
	UserID           ID              `json:"user_id,omitempty"`
	Message          string          `json:"message,omitempty"`
}

// VerifyRequest completes a second-factor challenge.
type VerifyRequest struct {
	UserID ID     `json:"user_id" validate:"required"`
	Code   string `json:"code" validate:"required"`
}

// VerifyResponse is returned by /auth/verify-2fa.
type VerifyResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
	Message string          `json:"message,omitempty"`
}

// TwoFactorRequest toggles the second factor for a user.
type TwoFactorRequest struct {
	UserID ID `json:"user_id" validate:"required"`
}

// Enable2FAResponse carries the provisioning QR code.
type Enable2FAResponse struct {
	Success bool   `json:"success"`
	QRCode  string `json:"qr_code,omitempty"`
	Secret  string `json:"secret,omitempty"`
	Message string `json:"message,omitempty"`
}

// ActionResponse is the generic acknowledgement body.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
