// Package models defines server-side data models persisted in the database.
package models

import "time"

// Profile is a registered player account. Username and the external identity
// fields stay nil until set.
type Profile struct {
	ID            int64     `json:"profile_id"`
	Email         string    `json:"email"`
	ExternalID    *string   `json:"external_id"`
	ExternalEmail *string   `json:"external_email"`
	Username      *string   `json:"username"`
	PasswordHash  string    `json:"-"`
	HasUsername   bool      `json:"has_username"`
	Score         int64     `json:"score"`
	CreatedAt     time.Time `json:"created_at"`
}

// UsernameOrEmpty returns the claimed username or "".
func (p *Profile) UsernameOrEmpty() string {
	if p.Username == nil {
		return ""
	}
	return *p.Username
}

// RankingEntry is one row of the score table.
type RankingEntry struct {
	ProfileID int64   `json:"profile_id"`
	Username  *string `json:"username"`
	Score     int64   `json:"score"`
}
