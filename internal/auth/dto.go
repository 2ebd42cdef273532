package auth

import "github.com/maisonvela/vela-backend/internal/customers"

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	FullName        *string `json:"full_name" validate:"omitempty,max=120"`
}

// LoginInput is the payload for an email and password sign-in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResult carries a signed access token together with the account it
// was minted for.
type AuthResult struct {
	Token    string                `json:"token"`
	Customer customers.CustomerDTO `json:"customer"`
}
