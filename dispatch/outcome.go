package dispatch

import "github.com/dlive-cli/dlive/listing"

// Outcome is what a navigation action produces: a *Directory to list or
// a *Playback to hand to a player.
type Outcome interface {
	outcome()
}

// Directory is a listing of rows.
type Directory struct {
	Rows []listing.Row `json:"rows"`
	// Content is the host content type of the listing.
	Content string `json:"content"`
	// Category is the heading of the listing, empty for none.
	Category string `json:"category,omitempty"`
}

// Playback is a resolved stream.
type Playback struct {
	Row      listing.Row `json:"row"`
	URL      string      `json:"url"`
	Adaptive bool        `json:"adaptive"`
	Username string      `json:"username"`
}

func (*Directory) outcome() {}

func (*Playback) outcome() {}
