package entity

import "time"

// Identity is what the identity provider vouches for after verifying a bearer token.
type Identity struct {
	UserId   string
	Name     string
	Email    string
	IssuedAt time.Time
	Claims   map[string]any
}
