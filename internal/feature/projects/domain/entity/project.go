// Package entity defines the domain models for the projects feature.
package entity

import "time"

// Project is a student project listed by the API.
// UserID is free text and is not checked against the users collection.
type Project struct {
	ID          string    // Store-assigned id rendered as hex
	Title       string    // Defaults to ""
	Description string    // Defaults to ""
	UserID      string    // Owner reference, defaults to ""
	CreatedAt   time.Time // UTC, set once at creation
	UpdatedAt   time.Time // Equal to CreatedAt, projects are never updated
}
