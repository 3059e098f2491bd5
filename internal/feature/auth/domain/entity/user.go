// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// Users are created once on registration and never updated afterwards.
type User struct {
	// ID is the store-assigned identifier rendered as a string.
	ID string

	// Name is optional and defaults to "".
	Name string

	// Email is the login identifier. It must be unique across all users.
	Email string

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string

	// Phone is optional and defaults to "".
	Phone string

	// CreatedAt is the UTC instant the user was registered.
	CreatedAt time.Time

	// UpdatedAt equals CreatedAt; there is no update path.
	UpdatedAt time.Time
}
