package dlive

import (
	"fmt"
	"strconv"

	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/util"
	"github.com/samber/mo"
)

// Category is a game or topic streams are filed under.
type Category struct {
	BackendID     int    `json:"backendID"`
	Title         string `json:"title"`
	ImgURL        string `json:"imgUrl"`
	CoverImgURL   string `json:"coverImgUrl"`
	WatchingCount int    `json:"watchingCount"`
}

func (*Category) Kind() Kind { return KindCategory }

func (*Category) sealed() {}

// Plot summarises the category.
func (c *Category) Plot() string {
	return fmt.Sprintf("%s\n%s watching", c.Title, util.Compact(c.WatchingCount))
}

// Row renders a folder leading to the category's streams.
// Category 0 is DLive's "all" pseudo category and is never listed.
func (c *Category) Row(ctx listing.Context) mo.Option[listing.Row] {
	if c.BackendID == 0 {
		return mo.None[listing.Row]()
	}

	return mo.Some(listing.Row{
		Label:  c.Title,
		Path:   ctx.URL(listing.Params{"categoryID": strconv.Itoa(c.BackendID)}),
		Folder: true,
		Plot:   c.Plot(),
		Poster: c.ImgURL,
		Thumb:  c.CoverImgURL,
	})
}

// Language is the language a stream is broadcast in.
type Language struct {
	BackendID int    `json:"backendID"`
	Code      string `json:"code"`
}

func (*Language) Kind() Kind { return KindLanguage }

func (*Language) sealed() {}

// Row is always absent, languages are not browsable.
func (*Language) Row(listing.Context) mo.Option[listing.Row] {
	return mo.None[listing.Row]()
}
