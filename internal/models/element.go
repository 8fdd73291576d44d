// File: internal/models/element.go

package models

// ElementType identifies the kind of a post body element
type ElementType string

const (
	ElementText    ElementType = "text"
	ElementLink    ElementType = "link"
	ElementImage   ElementType = "image"
	ElementSpoiler ElementType = "spoiler"
	ElementQuote   ElementType = "quote"
	ElementCode    ElementType = "code"
)

// Element is one node of a post's structured body
type Element struct {
	Type     ElementType `json:"type"`
	Text     string      `json:"text,omitempty"`
	URL      string      `json:"url,omitempty"`   // link target or image source
	Title    string      `json:"title,omitempty"` // spoiler title, quoted author
	Children []Element   `json:"children,omitempty"`
}
