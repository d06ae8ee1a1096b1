// Package authapi defines the wire contract of the authkeeper.AuthService
// gRPC service: request and response messages, the service descriptor, a
// JSON codec and the mapping between error classes and gRPC statuses.
package authapi

import "time"

// Account is the public view of an account. It never carries a secret.
type Account struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type RegisterResponse struct {
	Message string  `json:"message"`
	Account Account `json:"account"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Account   `json:"user"`
}

type VerifyRequest struct {
	Token string `json:"token"`
}

type VerifyResponse struct {
	Valid   bool   `json:"valid"`
	Subject string `json:"subject"`
}

// MeRequest is empty; the token travels in the authorization metadata.
type MeRequest struct{}

type MeResponse struct {
	User Account `json:"user"`
}
