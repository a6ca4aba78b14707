package domain

import "time"

// Admin is the domain model for course authors. Admins and end-users live in
// disjoint collections; the same email may exist in both.
type Admin struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
