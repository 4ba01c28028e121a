package models

import "time"

// Secret is a public, geotagged message waiting to be claimed.
type Secret struct {
	ID        int64   `json:"secret_id"`
	Message   string  `json:"message"`
	ProfileID int64   `json:"profile_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ClaimableSecret is a secret locked for a claim, with its owner's username.
type ClaimableSecret struct {
	Secret
	OwnerUsername *string
}

// StashEntry is a secret moved into the claimer's stash. PosterID and
// PosterUsername are a snapshot of the original owner at claim time.
type StashEntry struct {
	ID             int64     `json:"stash_id"`
	Message        string    `json:"message"`
	ProfileID      int64     `json:"profile_id"`
	PosterID       *int64    `json:"poster_id"`
	PosterUsername *string   `json:"poster_username"`
	StashedAt      time.Time `json:"stashed_at"`
}
