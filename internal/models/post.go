// File: internal/models/post.go

package models

import "time"

// Post is a single message of a thread
type Post struct {
	ID         int        `json:"id"`
	Number     int        `json:"number"` // position inside the thread, starting at 1
	Published  time.Time  `json:"published"`
	LastEdit   *time.Time `json:"lastEdit,omitempty"`
	OwnerID    int        `json:"ownerId"` // 0 for guests
	Bookmarked bool       `json:"bookmarked"`
	Message    string     `json:"message"`
	Body       []Element  `json:"body"`
}
