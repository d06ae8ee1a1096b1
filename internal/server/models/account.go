package models

import "time"

// Account is the persisted identity record. Email is the unique identity
// attribute and is compared case-sensitively.
type Account struct {
	ID        string
	Email     string
	Password  string
	FirstName string
	LastName  string
	CreatedAt time.Time
}

// PublicAccount is the projection of an Account that is safe to hand back
// to callers. It has no field for the credential secret.
type PublicAccount struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

func (a *Account) Public() PublicAccount {
	full := a.FirstName
	if a.LastName != "" {
		full += " " + a.LastName
	}
	return PublicAccount{
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  full,
	}
}
