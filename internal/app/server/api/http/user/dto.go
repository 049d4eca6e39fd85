package user

import "artha/internal/domain/user"

type registerInput struct {
	Body RegisterRequest
}

type RegisterRequest struct {
	Name     string `json:"name" maxLength:"100" example:"Asha Rao"`
	Email    string `json:"email" maxLength:"320" example:"asha@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

type loginInput struct {
	Body LoginRequest
}

type LoginRequest struct {
	Email    string `json:"email" example:"asha@example.com"`
	Password string `json:"password" example:"s3cret!"`
}

type authOutput struct {
	Body AuthResponse
}

type AuthResponse struct {
	Message string       `json:"message" example:"Login successful"`
	Token   string       `json:"token" doc:"Bearer token valid for 7 days"`
	User    user.Profile `json:"user"`
}

type profileOutput struct {
	Body ProfileResponse
}

type ProfileResponse struct {
	User user.Profile `json:"user"`
}

type preferencesInput struct {
	Body user.Preferences
}

type passwordInput struct {
	Body PasswordRequest
}

type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type messageOutput struct {
	Body UserMessageResponse
}

type UserMessageResponse struct {
	Message string `json:"message"`
}
