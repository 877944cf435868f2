package handler

import "github.com/sessionlab/identity-service/internal/core/domain"

type credentialsRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type registerResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type sessionResponse struct {
	User    *domain.PublicUser `json:"user,omitempty"`
	Message string             `json:"message,omitempty"`
}
