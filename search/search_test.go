package search

import (
	"fmt"
	"testing"

	"github.com/dlive-cli/dlive/filesystem"
	"github.com/dlive-cli/dlive/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

var stores int

func newStore() *Store {
	stores++
	return New(fmt.Sprintf("/searches/%d.json", stores))
}

func TestStore(t *testing.T) {
	Convey("Given a search store", t, func() {
		viper.Set(key.SearchHistorySize, 20)
		viper.Set(key.SearchShowQuerySuggestions, true)
		store := newStore()

		Convey("It should start empty", func() {
			recent, err := store.Recent("users")
			So(err, ShouldBeNil)
			So(recent, ShouldBeEmpty)
		})

		Convey("When remembering texts", func() {
			So(store.Remember("users", "alice"), ShouldBeNil)
			So(store.Remember("users", "  bob "), ShouldBeNil)
			So(store.Remember("categories", "chess"), ShouldBeNil)
			So(store.Remember("users", ""), ShouldBeNil)

			Convey("Then they should be listed most recent first per kind", func() {
				recent, err := store.Recent("users")
				So(err, ShouldBeNil)
				So(recent, ShouldResemble, []string{"bob", "alice"})

				recent, err = store.Recent("categories")
				So(err, ShouldBeNil)
				So(recent, ShouldResemble, []string{"chess"})
			})

			Convey("Then searching again should move a text to the front", func() {
				So(store.Remember("users", "alice"), ShouldBeNil)
				recent, _ := store.Recent("users")
				So(recent, ShouldResemble, []string{"alice", "bob"})
			})

			Convey("Then the history size should bound the listing", func() {
				viper.Set(key.SearchHistorySize, 1)
				recent, _ := store.Recent("users")
				So(recent, ShouldResemble, []string{"bob"})
			})

			Convey("Then older texts beyond the history size should be dropped", func() {
				viper.Set(key.SearchHistorySize, 2)
				So(store.Remember("users", "carol"), ShouldBeNil)

				viper.Set(key.SearchHistorySize, 20)
				recent, _ := store.Recent("users")
				So(recent, ShouldResemble, []string{"carol", "bob"})
			})

			Convey("Then a text can be removed", func() {
				So(store.Remove("users", "alice"), ShouldBeNil)
				recent, _ := store.Recent("users")
				So(recent, ShouldResemble, []string{"bob"})
			})

			Convey("Then a kind can be cleared", func() {
				So(store.Clear("users"), ShouldBeNil)
				users, _ := store.Recent("users")
				categories, _ := store.Recent("categories")
				So(users, ShouldBeEmpty)
				So(categories, ShouldHaveLength, 1)
			})

			Convey("Then every kind can be cleared", func() {
				So(store.Clear(""), ShouldBeNil)
				categories, _ := store.Recent("categories")
				So(categories, ShouldBeEmpty)
			})
		})

		Convey("Suggestions should prefer the most used match", func() {
			So(store.Remember("users", "alicia"), ShouldBeNil)
			So(store.Remember("users", "alice"), ShouldBeNil)
			So(store.Remember("users", "alice"), ShouldBeNil)

			So(store.Suggest("users", "ali").MustGet(), ShouldEqual, "alice")
			So(store.Suggest("users", "zzz").IsAbsent(), ShouldBeTrue)
			So(store.Suggest("categories", "ali").IsAbsent(), ShouldBeTrue)

			viper.Set(key.SearchShowQuerySuggestions, false)
			So(store.Suggest("users", "ali").IsAbsent(), ShouldBeTrue)
		})
	})
}
