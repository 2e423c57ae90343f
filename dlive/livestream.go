package dlive

import (
	"fmt"
	"strings"

	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/util"
	"github.com/samber/mo"
)

// Livestream is a broadcast currently on air.
type Livestream struct {
	Permlink       string        `json:"permlink"`
	AgeRestriction int           `json:"ageRestriction"`
	ThumbnailURL   string        `json:"thumbnailUrl"`
	Title          string        `json:"title"`
	CreatedAt      Timestamp     `json:"createdAt"`
	WatchingCount  int           `json:"watchingCount"`
	Language       Ref[Language] `json:"language"`
	Category       Ref[Category] `json:"category"`
	Creator        Ref[User]     `json:"creator"`
}

func (*Livestream) Kind() Kind { return KindLivestream }

func (*Livestream) sealed() {}

// Rating is the age rating label, empty for unrestricted streams.
func (l *Livestream) Rating() string {
	return rating(l.AgeRestriction)
}

// Label is "<channel> - <title>".
func (l *Livestream) Label() string {
	if creator, ok := l.Creator.Get(); ok {
		return creator.Displayname + " - " + l.Title
	}
	return l.Title
}

// Plot summarises the stream.
func (l *Livestream) Plot() string {
	lines := []string{l.Title}
	if category, ok := l.Category.Get(); ok && category.Title != "" {
		lines = append(lines, category.Title)
	}
	lines = append(lines, fmt.Sprintf("%s watching", util.Compact(l.WatchingCount)))
	if !l.CreatedAt.IsZero() {
		lines = append(lines, "Live since "+l.CreatedAt.Format("2006-01-02 15:04"))
	}
	return strings.Join(lines, "\n")
}

// Playable renders the stream as a playable row pointing at path.
func (l *Livestream) Playable(path string) listing.Row {
	return listing.Row{
		Label:    l.Label(),
		Path:     path,
		Playable: true,
		Plot:     l.Plot(),
		Thumb:    l.ThumbnailURL,
		Rating:   l.Rating(),
	}
}

// Row renders a playable row that resolves the stream of its creator.
func (l *Livestream) Row(ctx listing.Context) mo.Option[listing.Row] {
	creator, ok := l.Creator.Get()
	if !ok {
		return mo.None[listing.Row]()
	}

	return mo.Some(l.Playable(ctx.URL(listing.Params{"username": creator.Username})))
}

// PastBroadcast is a recorded broadcast.
type PastBroadcast struct {
	Permlink       string        `json:"permlink"`
	AgeRestriction int           `json:"ageRestriction"`
	Length         int           `json:"length"`
	ThumbnailURL   string        `json:"thumbnailUrl"`
	Title          string        `json:"title"`
	CreatedAt      Timestamp     `json:"createdAt"`
	ViewCount      int           `json:"viewCount"`
	PlaybackURL    string        `json:"playbackUrl"`
	Language       Ref[Language] `json:"language"`
	Category       Ref[Category] `json:"category"`
	Creator        Ref[User]     `json:"creator"`
}

func (*PastBroadcast) Kind() Kind { return KindPastBroadcast }

func (*PastBroadcast) sealed() {}

// Rating is the age rating label, empty for unrestricted broadcasts.
func (p *PastBroadcast) Rating() string {
	return rating(p.AgeRestriction)
}

// Plot summarises the broadcast.
func (p *PastBroadcast) Plot() string {
	lines := []string{p.Title, util.Quantify(p.ViewCount, "view", "views"), util.Clock(p.Length)}
	if !p.CreatedAt.IsZero() {
		lines = append(lines, "Streamed "+p.CreatedAt.Format("2006-01-02"))
	}
	return strings.Join(lines, "\n")
}

// Row renders a playable row pointing straight at the recording.
func (p *PastBroadcast) Row(listing.Context) mo.Option[listing.Row] {
	return mo.Some(listing.Row{
		Label:    p.Title,
		Path:     p.PlaybackURL,
		Playable: true,
		Plot:     p.Plot(),
		Thumb:    p.ThumbnailURL,
		Duration: p.Length,
		Rating:   p.Rating(),
	})
}

func rating(ageRestriction int) string {
	if ageRestriction > 0 {
		return LabelAgeRestricted
	}
	return ""
}
