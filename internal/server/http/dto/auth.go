package dto

import "time"

// RegisterRequest describes direct sign-up payload.
type RegisterRequest struct {
	Name      string `json:"name" binding:"required"`
	Address   string `json:"address" binding:"required"`
	BirthDate string `json:"birthDate"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	IsStore   bool   `json:"isStore"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries a Google ID token.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// CompleteProfileRequest finishes registration of an account created via Google.
type CompleteProfileRequest struct {
	UserID    int64  `json:"userId" binding:"required,gt=0"`
	Password  string `json:"password" binding:"required"`
	IsStore   *bool  `json:"isStore" binding:"required"`
	BirthDate string `json:"birthDate"`
}

// UserResponse is the public representation of an account.
type UserResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	BirthDate  *string   `json:"birthDate"`
	Email      string    `json:"email"`
	IsStore    bool      `json:"isStore"`
	ExternalID *string   `json:"externalId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RegisterResponse is returned after successful sign-up.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// LoginResponse is returned by both login flows.
type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	UserID  int64        `json:"userId"`
	User    UserResponse `json:"user"`
}

// MessageResponse carries a human readable outcome or error.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is used for unexpected failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
