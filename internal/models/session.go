package models

import (
	"time"
)

// Session is an opaque server-side login session. A session is valid iff
// the row still exists and the absolute expiry has not passed. Expiry is
// never swept in the background; it is checked when the token is resolved.
type Session struct {
	Token     string    `json:"-" gorm:"primaryKey;size:64"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
}
