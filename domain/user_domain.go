package domain

import "time"

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "user logged in successfully"
	MessageSuccessGetMe    = "user retrieved successfully"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to retrieve user"

	ErrUserNotFound       = NewError(ErrNotFound, "user not found")
	ErrUsernameTaken      = NewError(ErrConflict, "username already taken")
	ErrEmailTaken         = NewError(ErrConflict, "email already registered")
	ErrInvalidCredentials = NewError(ErrUnauthenticated, "invalid username or password")
)

type (
	RegisterRequest struct {
		Username    string `json:"username" validate:"required,min=3,max=150,username"`
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,min=8,max=72"`
		FirstName   string `json:"first_name" validate:"omitempty,max=150"`
		LastName    string `json:"last_name" validate:"omitempty,max=150"`
		PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string       `json:"token"`
		Role  string       `json:"role"`
		User  UserResponse `json:"user"`
	}

	UserResponse struct {
		ID          string    `json:"id"`
		Username    string    `json:"username"`
		Email       string    `json:"email"`
		FirstName   string    `json:"first_name"`
		LastName    string    `json:"last_name"`
		PhoneNumber string    `json:"phone_number"`
		Role        string    `json:"role"`
		HasProfile  bool      `json:"has_profile"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
