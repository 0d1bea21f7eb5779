package domain

import (
	"errors"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login success"
	MessageSuccessGetProfile = "success get profile"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetProfile = "failed to get profile"

	ErrUserAlreadyExists  = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialsInvalid = errors.New("invalid credentials")
)

type (
	RegisterRequest struct {
		Username       string `json:"username" validate:"required,min=3,max=255"`
		Password       string `json:"password" validate:"required,min=8"`
		Email          string `json:"email" validate:"omitempty,email"`
		RestaurantName string `json:"restaurant_name" validate:"required,max=255"`
	}

	RegisterResponse struct {
		ID         string            `json:"id"`
		Username   string            `json:"username"`
		Restaurant RestaurantSummary `json:"restaurant"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}

	ProfileResponse struct {
		ID         string             `json:"id"`
		Username   string             `json:"username"`
		Role       string             `json:"role"`
		Restaurant *RestaurantSummary `json:"restaurant,omitempty"`
	}
)
