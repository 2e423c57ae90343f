package dlive

import (
	"fmt"

	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/util"
	"github.com/samber/mo"
)

// Followers holds the follower count of a user.
type Followers struct {
	TotalCount int `json:"totalCount"`
}

// User is a DLive channel.
type User struct {
	Username       string              `json:"username"`
	Displayname    string              `json:"displayname"`
	Avatar         string              `json:"avatar"`
	CreatedAt      Timestamp           `json:"createdAt"`
	Followers      Followers           `json:"followers"`
	Livestream     Ref[Livestream]     `json:"livestream"`
	PastBroadcasts page[PastBroadcast] `json:"pastBroadcasts"`
}

func (*User) Kind() Kind { return KindUser }

func (*User) sealed() {}

// Plot summarises the channel.
func (u *User) Plot() string {
	return fmt.Sprintf("%s\n%s", u.Displayname, util.Quantify(u.Followers.TotalCount, "follower", "followers"))
}

// Row renders a folder leading to the channel page.
func (u *User) Row(ctx listing.Context) mo.Option[listing.Row] {
	return mo.Some(listing.Row{
		Label:  u.Displayname,
		Path:   ctx.URL(listing.Params{"username": u.Username}),
		Folder: true,
		Plot:   u.Plot(),
		Poster: u.Avatar,
		Thumb:  u.Avatar,
	})
}

// Broadcasts returns the past broadcasts page, labelled with the channel name.
func (u *User) Broadcasts() *Collection[*PastBroadcast] {
	meta := u.PastBroadcasts.meta()
	meta.Category = u.Displayname
	return collect[PastBroadcast](u.PastBroadcasts.List, meta)
}
