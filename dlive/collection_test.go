package dlive

import (
	"slices"
	"testing"

	"github.com/dlive-cli/dlive/listing"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCollection(t *testing.T) {
	Convey("Given a collection with absent items", t, func() {
		items := []mo.Option[*Category]{
			mo.Some(&Category{BackendID: 1, Title: "One"}),
			mo.None[*Category](),
			mo.Some(&Category{BackendID: 0, Title: "All"}),
			mo.Some(&Category{BackendID: 2, Title: "Two"}),
		}
		collection := NewCollection(items, Meta{})

		Convey("Defaults should apply", func() {
			So(collection.EndCursor(), ShouldEqual, FirstCursor)
			So(collection.HasNextPage(), ShouldBeFalse)
			So(collection.Content(), ShouldEqual, "videos")
			So(collection.Category(), ShouldBeEmpty)
		})

		Convey("Records should skip absent items", func() {
			titles := lo.Map(collection.Slice(), func(c *Category, _ int) string { return c.Title })
			So(titles, ShouldResemble, []string{"One", "All", "Two"})
		})

		Convey("Records should be restartable", func() {
			So(slices.Collect(collection.Records()), ShouldHaveLength, 3)
			So(slices.Collect(collection.Records()), ShouldHaveLength, 3)
		})

		Convey("Iteration should stop early when asked", func() {
			count := 0
			for range collection.Records() {
				count++
				break
			}
			So(count, ShouldEqual, 1)
		})

		Convey("Rows should skip records without a row", func() {
			rows := slices.Collect(collection.Rows(listing.Context{BaseURL: "dlive://", Action: "category"}))
			So(rows, ShouldHaveLength, 2)
			So(rows[1].Path, ShouldEqual, "dlive://?action=category&categoryID=2")
		})

		Convey("The last page should have no continuation", func() {
			_, ok := collection.Next(listing.Params{"action": "categories"})
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a page with more results", t, func() {
		collection := CollectionOf(Meta{EndCursor: "40", HasNextPage: true, Category: "Minecraft"}, &Livestream{})

		Convey("Next should keep every param and set after", func() {
			params := listing.Params{"action": "category", "categoryID": "7", "after": "20"}
			next, ok := collection.Next(params)

			So(ok, ShouldBeTrue)
			So(next, ShouldResemble, listing.Params{"action": "category", "categoryID": "7", "after": "40"})
			So(params["after"], ShouldEqual, "20")
		})

		Convey("Explicit metadata should be kept", func() {
			So(collection.Category(), ShouldEqual, "Minecraft")
			collection.SetCategory("Fortnite")
			So(collection.Category(), ShouldEqual, "Fortnite")
		})
	})

	Convey("An empty final page renders nothing", t, func() {
		collection := NewCollection[*User](nil, Meta{})
		So(slices.Collect(collection.Rows(ctx)), ShouldBeEmpty)
		_, ok := collection.Next(nil)
		So(ok, ShouldBeFalse)
	})
}

func TestCategoryIndex(t *testing.T) {
	Convey("Given a seeded index", t, func() {
		index := NewCategoryIndex(&Category{BackendID: 5, Title: "Five"}, &Category{BackendID: 6, Title: "Six"})

		Convey("Lookup should coerce ids", func() {
			So(index.Lookup(5).Title, ShouldEqual, "Five")
			So(index.Lookup("5").Title, ShouldEqual, "Five")
			So(index.Lookup(int64(6)).Title, ShouldEqual, "Six")
		})

		Convey("String ids should be decimal", func() {
			index.Update(&Category{BackendID: 8, Title: "Eight"}, &Category{BackendID: 10, Title: "Ten"})
			So(index.Lookup("010").Title, ShouldEqual, "Ten")
			So(index.Lookup(" 8 ").Title, ShouldEqual, "Eight")
			So(index.Lookup("0x8"), ShouldResemble, Placeholder)
		})

		Convey("Misses should return the placeholder", func() {
			So(index.Lookup(99), ShouldResemble, Placeholder)
			So(index.Lookup("five"), ShouldResemble, Placeholder)
			So(Placeholder.BackendID, ShouldEqual, -1)
			So(Placeholder.Title, ShouldBeEmpty)
			So(Placeholder.WatchingCount, ShouldEqual, 0)
		})

		Convey("Update should merge without evicting", func() {
			index.Update(&Category{BackendID: 6, Title: "Six!"}, &Category{BackendID: 7, Title: "Seven"})
			So(index.Len(), ShouldEqual, 3)
			So(index.Lookup(5).Title, ShouldEqual, "Five")
			So(index.Lookup(6).Title, ShouldEqual, "Six!")
			So(index.Lookup(7).Title, ShouldEqual, "Seven")
		})

		Convey("Seed should replace everything", func() {
			index.Seed(&Category{BackendID: 8, Title: "Eight"})
			So(index.Len(), ShouldEqual, 1)
			So(index.Lookup(5), ShouldResemble, Placeholder)
		})

		Convey("Lookup should return a copy", func() {
			found := index.Lookup(5)
			found.Title = "changed"
			So(index.Lookup(5).Title, ShouldEqual, "Five")
		})
	})

	Convey("A zero index should accept updates", t, func() {
		var index CategoryIndex
		index.Update(&Category{BackendID: 1, Title: "One"})
		So(index.Lookup(1).Title, ShouldEqual, "One")
	})
}
