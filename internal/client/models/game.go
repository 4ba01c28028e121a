// Package models holds the client-side view of the server's JSON payloads.
package models

import "time"

// UserInfo is the user object returned by login and username registration.
type UserInfo struct {
	ProfileID int64   `json:"profile_id"`
	Email     string  `json:"email"`
	Username  *string `json:"username,omitempty"`
	Score     *int64  `json:"score,omitempty"`
}

// LoginResponse is the body of a successful login or username update.
type LoginResponse struct {
	HasUsername bool     `json:"has_username"`
	Message     string   `json:"message"`
	Token       string   `json:"token"`
	User        UserInfo `json:"user"`
}

type Profile struct {
	ProfileID   int64     `json:"profile_id"`
	Email       string    `json:"email"`
	Username    *string   `json:"username"`
	HasUsername bool      `json:"has_username"`
	Score       int64     `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

type Secret struct {
	SecretID  int64   `json:"secret_id"`
	Message   string  `json:"message"`
	ProfileID int64   `json:"profile_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type StashEntry struct {
	StashID        int64     `json:"stash_id"`
	Message        string    `json:"message"`
	PosterID       *int64    `json:"poster_id"`
	PosterUsername *string   `json:"poster_username"`
	StashedAt      time.Time `json:"stashed_at"`
}

type RankingEntry struct {
	ProfileID int64   `json:"profile_id"`
	Username  *string `json:"username"`
	Score     int64   `json:"score"`
}

// Name returns the username or a placeholder for players without one.
func (r RankingEntry) Name() string {
	if r.Username == nil || *r.Username == "" {
		return "(anonymous)"
	}
	return *r.Username
}
