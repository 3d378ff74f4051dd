package model

import "github.com/golang-jwt/jwt/v5"

// AccountClaims are the JWT claims the platform's account service issues.
// The engine only needs the account ID and the admin flag from them.
type AccountClaims struct {
	AccountID string `json:"accountId"`
	Admin     bool   `json:"admin"`
	jwt.RegisteredClaims
}
