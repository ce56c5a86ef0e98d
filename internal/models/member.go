package models

import "time"

// Member is read-only for this service: identity is issued by the club
// registry and never changes once assigned.
type Member struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
