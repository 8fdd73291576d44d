// File: internal/models/user.go

package models

import "time"

// PlatformUser is a member of the platform. Threads and posts only hold the
// user's ID; the full record is loaded on demand.
type PlatformUser struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Title        string    `json:"title,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	Joined       time.Time `json:"joined"`
	MessageCount int       `json:"messageCount"`
}
