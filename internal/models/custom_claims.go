package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims represents the custom claims in admin access tokens
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
}
