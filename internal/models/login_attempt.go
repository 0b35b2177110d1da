package models

import "time"

// LoginAttempt is one audited admin login attempt
type LoginAttempt struct {
	ID          string    `json:"id" db:"id"`
	IPAddress   string    `json:"ipAddress" db:"ip_address"`
	Username    string    `json:"username,omitempty" db:"username"`
	AttemptedAt time.Time `json:"attemptedAt" db:"attempted_at"`
	Success     bool      `json:"success" db:"success"`
	Blocked     bool      `json:"blocked" db:"blocked"`
}
