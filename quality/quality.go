// Package quality picks a rendition from an HLS master playlist.
package quality

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// Tier is the user's quality preference.
type Tier int

const (
	// Auto plays the master playlist and lets the player decide.
	Auto Tier = iota
	P1080
	P720
	P480
	P360
	// Ask presents every rendition to a Chooser.
	Ask
	// Adaptive hands the master playlist to an adaptive player.
	Adaptive
)

var (
	heights = map[Tier]int{P1080: 1080, P720: 720, P480: 480, P360: 360}
	names   = []string{"auto", "1080p", "720p", "480p", "360p", "ask", "adaptive"}
)

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return names[t]
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t >= Auto && t <= Adaptive
}

// Bypass reports whether selection is skipped and the master playlist
// itself is played.
func (t Tier) Bypass() bool {
	return t == Auto || t == Adaptive
}

// Tiers lists every tier name.
func Tiers() []string {
	return append([]string(nil), names...)
}

// ParseTier accepts a tier number ("2") or name ("720p", "ask").
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if s == name {
			return Tier(i), nil
		}
	}

	n, err := strconv.Atoi(s)
	if err != nil || !Tier(n).Valid() {
		return Auto, fmt.Errorf("unknown quality %q, expected 0-6 or one of %s", s, strings.Join(names, ", "))
	}

	return Tier(n), nil
}

// Quality is one rendition of a stream.
type Quality struct {
	URI       string `json:"uri"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bandwidth int    `json:"bandwidth"`
}

func (q Quality) String() string {
	return fmt.Sprintf("%dx%d@%dbps", q.Width, q.Height, q.Bandwidth)
}

// Cancelled is what a Chooser returns when the user dismisses it.
const Cancelled = -1

// Chooser asks the user to pick one of options and returns its index,
// or Cancelled.
type Chooser interface {
	Choose(heading string, options []string) int
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(heading string, options []string) int

func (f ChooserFunc) Choose(heading string, options []string) int {
	return f(heading, options)
}

// Heading is shown above the rendition list.
const Heading = "Stream quality"

// BestMatch returns the first quality whose height does not exceed the tier
// cap. qualities must be sorted by height, highest first.
func BestMatch(tier Tier, qualities []Quality) mo.Option[Quality] {
	limit, ok := heights[tier]
	if !ok {
		return mo.None[Quality]()
	}

	for _, q := range qualities {
		if q.Height <= limit {
			return mo.Some(q)
		}
	}

	return mo.None[Quality]()
}

// Select applies tier to qualities. Fixed tiers use BestMatch and Ask
// defers to chooser. Bypass tiers and empty input select nothing.
func Select(tier Tier, qualities []Quality, chooser Chooser) mo.Option[Quality] {
	if len(qualities) == 0 {
		return mo.None[Quality]()
	}

	if tier != Ask {
		return BestMatch(tier, qualities)
	}

	if chooser == nil {
		return mo.None[Quality]()
	}

	labels := make([]string, len(qualities))
	for i, q := range qualities {
		labels[i] = q.String()
	}

	index := chooser.Choose(Heading, labels)
	if index < 0 || index >= len(qualities) {
		return mo.None[Quality]()
	}

	return mo.Some(qualities[index])
}
