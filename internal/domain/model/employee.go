package model

import "time"

// Employee represents a registered employee who can sign in to the dashboards.
type Employee struct {
	ID           string
	Email        string
	ServiceNo    string
	Section      string
	PasswordHash string
	CreatedAt    time.Time
}
