// File: internal/models/thread.go

package models

import "time"

// Rating summarises the platform's aggregate rating for a thread
type Rating struct {
	Average float64 `json:"average"`
	Best    float64 `json:"best"`
	Count   int     `json:"count"`
}

// Thread is a fully assembled discussion thread.
// It is built by a single fetch and never updated afterwards.
type Thread struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Tags     []string  `json:"tags"`
	Prefixes []string  `json:"prefixes"`
	OwnerID  int       `json:"ownerId"` // resolve with UserService.Resolve
	Created  time.Time `json:"created"`
	Rating   Rating    `json:"rating"`
	Posts    []Post    `json:"posts"` // ascending by Post.ID
}

// FirstPost returns the opening post, or nil for an empty thread
func (t *Thread) FirstPost() *Post {
	if len(t.Posts) == 0 {
		return nil
	}
	return &t.Posts[0]
}
