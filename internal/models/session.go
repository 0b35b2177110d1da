package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are carried by the signed admin session token
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
