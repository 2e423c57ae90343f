package dlive

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dlive-cli/dlive/listing"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const livestreamJSON = `{
	"permlink": "alice+abc",
	"ageRestriction": 0,
	"thumbnailUrl": "https://images.example.com/thumb.jpg",
	"title": "Speedrun",
	"createdAt": "1600000000000",
	"watchingCount": 1250,
	"language": {"backendID": 1, "code": "en"},
	"category": {"backendID": 7, "title": "Minecraft", "imgUrl": "img", "coverImgUrl": "cover", "watchingCount": 10},
	"creator": {"username": "alice", "displayname": "Alice", "avatar": "https://images.example.com/alice.png"}
}`

var ctx = listing.Context{BaseURL: "dlive://", Action: "stream"}

func TestParse(t *testing.T) {
	Convey("Given raw records", t, func() {
		Convey("Empty input should be absent", func() {
			for _, raw := range []string{"", "null", " {} ", "{\n}"} {
				record, err := Parse[Category]([]byte(raw))
				So(err, ShouldBeNil)
				So(record.IsAbsent(), ShouldBeTrue)
			}
		})

		Convey("A non-empty object should be present with fields matching the source", func() {
			record, err := Parse[Category]([]byte(`{"backendID": 3, "title": "Art", "imgUrl": "i", "watchingCount": 9}`))
			So(err, ShouldBeNil)

			category := record.MustGet()
			So(category.BackendID, ShouldEqual, 3)
			So(category.Title, ShouldEqual, "Art")
			So(category.ImgURL, ShouldEqual, "i")
			So(category.CoverImgURL, ShouldBeEmpty)
			So(category.WatchingCount, ShouldEqual, 9)
		})

		Convey("Invalid input should fail", func() {
			_, err := Parse[Category]([]byte(`{"backendID": "x"}`))
			So(err, ShouldNotBeNil)
		})

		Convey("Nested records should be decoded at construction", func() {
			stream := lo.Must(Parse[Livestream]([]byte(livestreamJSON))).MustGet()

			creator, ok := stream.Creator.Get()
			So(ok, ShouldBeTrue)
			So(creator.Username, ShouldEqual, "alice")
			So(stream.Category.Present(), ShouldBeTrue)
			So(lo.Must(stream.Language.Get()).Code, ShouldEqual, "en")
			So(stream.CreatedAt.Equal(time.UnixMilli(1600000000000)), ShouldBeTrue)
		})

		Convey("Empty nested records should be absent", func() {
			stream := lo.Must(Parse[Livestream]([]byte(`{"title": "t", "creator": {}, "category": null}`))).MustGet()
			So(stream.Creator.Present(), ShouldBeFalse)
			So(stream.Category.Present(), ShouldBeFalse)
			So(stream.Language.Present(), ShouldBeFalse)
		})

		Convey("Missing followers should count as zero", func() {
			user := lo.Must(Parse[User]([]byte(`{"username": "bob", "followers": null}`))).MustGet()
			So(user.Followers.TotalCount, ShouldEqual, 0)
		})
	})
}

func TestTimestamp(t *testing.T) {
	Convey("Timestamps", t, func() {
		var ts Timestamp

		So(json.Unmarshal([]byte(`"1600000000000"`), &ts), ShouldBeNil)
		So(ts.UnixMilli(), ShouldEqual, 1600000000000)

		So(json.Unmarshal([]byte(`1600000000123`), &ts), ShouldBeNil)
		So(ts.UnixMilli(), ShouldEqual, 1600000000123)

		var empty Timestamp
		So(json.Unmarshal([]byte(`""`), &empty), ShouldBeNil)
		So(empty.IsZero(), ShouldBeTrue)

		So(json.Unmarshal([]byte(`"yesterday"`), &ts), ShouldNotBeNil)

		So(string(lo.Must(json.Marshal(Timestamp{Time: time.UnixMilli(42)}))), ShouldEqual, `"42"`)
	})
}

func TestRows(t *testing.T) {
	Convey("Given records", t, func() {
		Convey("A category renders a folder to its streams", func() {
			category := &Category{BackendID: 7, Title: "Minecraft", ImgURL: "img", WatchingCount: 1250}
			row := category.Row(listing.Context{BaseURL: "dlive://", Action: "category"}).MustGet()

			So(row.Label, ShouldEqual, "Minecraft")
			So(row.Path, ShouldEqual, "dlive://?action=category&categoryID=7")
			So(row.Folder, ShouldBeTrue)
			So(row.Poster, ShouldEqual, "img")
			So(row.Plot, ShouldContainSubstring, "1.2K watching")
		})

		Convey("Category 0 renders no row", func() {
			So((&Category{Title: "All"}).Row(ctx).IsAbsent(), ShouldBeTrue)
		})

		Convey("A user renders a folder to the channel", func() {
			user := &User{Username: "bob", Displayname: "Bob", Avatar: "a", Followers: Followers{TotalCount: 1}}
			row := user.Row(listing.Context{BaseURL: "dlive://", Action: "user"}).MustGet()

			So(row.Label, ShouldEqual, "Bob")
			So(row.Path, ShouldEqual, "dlive://?action=user&username=bob")
			So(row.Plot, ShouldContainSubstring, "1 follower")
		})

		Convey("A livestream renders a playable row", func() {
			stream := lo.Must(Parse[Livestream]([]byte(livestreamJSON))).MustGet()
			row := stream.Row(ctx).MustGet()

			So(row.Label, ShouldEqual, "Alice - Speedrun")
			So(row.Path, ShouldEqual, "dlive://?action=stream&username=alice")
			So(row.Playable, ShouldBeTrue)
			So(row.Folder, ShouldBeFalse)
			So(row.Rating, ShouldBeEmpty)
			So(row.Plot, ShouldContainSubstring, "Minecraft")

			stream.AgeRestriction = 18
			So(stream.Row(ctx).MustGet().Rating, ShouldEqual, LabelAgeRestricted)
		})

		Convey("A livestream without creator renders no row", func() {
			So((&Livestream{Title: "x"}).Row(ctx).IsAbsent(), ShouldBeTrue)
		})

		Convey("A past broadcast points at its recording", func() {
			vod := &PastBroadcast{Title: "VOD", PlaybackURL: "https://vod.example.com/v.m3u8", Length: 3725, ViewCount: 2}
			row := vod.Row(ctx).MustGet()

			So(row.Path, ShouldEqual, "https://vod.example.com/v.m3u8")
			So(row.Duration, ShouldEqual, 3725)
			So(row.Plot, ShouldContainSubstring, "2 views")
		})

		Convey("Every record reports its kind", func() {
			records := []Record{&Folder{}, &Category{}, &Language{}, &User{}, &Livestream{}, &PastBroadcast{}}
			kinds := lo.Map(records, func(r Record, _ int) Kind { return r.Kind() })
			So(kinds, ShouldResemble, []Kind{KindFolder, KindCategory, KindLanguage, KindUser, KindLivestream, KindPastBroadcast})
			So((&Language{}).Row(ctx).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestFolders(t *testing.T) {
	Convey("Home folders", t, func() {
		rows := lo.Map(Home().Slice(), func(f *Folder, _ int) listing.Row { return f.Row(ctx).MustGet() })
		paths := lo.Map(rows, func(r listing.Row, _ int) string { return r.Path })

		So(paths, ShouldResemble, []string{
			"dlive://?action=featured",
			"dlive://?action=recommended",
			"dlive://?action=streams",
			"dlive://?action=categories",
			"dlive://?action=search",
			"dlive://?action=watched",
		})
		So(rows[0].Label, ShouldEqual, LabelFeatured)
		So(lo.EveryBy(rows, func(r listing.Row) bool { return r.Folder }), ShouldBeTrue)
	})

	Convey("Search folders route to the search history of each kind", t, func() {
		paths := lo.Map(SearchFolders().Slice(), func(f *Folder, _ int) string { return f.Row(ctx).MustGet().Path })
		So(paths, ShouldResemble, []string{
			"dlive://?action=search_history&query=users",
			"dlive://?action=search_history&query=categories",
		})
	})

	Convey("Unknown folders render nothing", t, func() {
		So((&Folder{Type: "nope"}).Row(ctx).IsAbsent(), ShouldBeTrue)
	})
}
