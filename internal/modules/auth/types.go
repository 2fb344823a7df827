package auth

import "errors"

var (
	errWrongCredentials = errors.New("incorrect email or password")
	errEmailTaken       = errors.New("an account with this email already exists")
)

// SignupDTO is the request body for POST /auth/signup.
type SignupDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginDTO is the request body for POST /auth/login.
type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
