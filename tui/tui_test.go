package tui

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/network"
	"github.com/dlive-cli/dlive/quality"
	. "github.com/smartystreets/goconvey/convey"
)

func TestHost(t *testing.T) {
	Convey("Given a host", t, func() {
		done := make(chan struct{})
		h := newHost(done)

		Convey("Prompts reach the bubble and answers come back", func() {
			answer := make(chan promptReply, 1)
			go func() {
				text, ok := h.Prompt("users", "Channel")
				answer <- promptReply{text: text, ok: ok}
			}()

			request, ok := h.waitForRequest()().(promptRequest)
			So(ok, ShouldBeTrue)
			So(request.kind, ShouldEqual, "users")
			So(request.heading, ShouldEqual, "Channel")

			request.reply <- promptReply{text: "mario", ok: true}
			So(<-answer, ShouldResemble, promptReply{text: "mario", ok: true})
		})

		Convey("Choices reach the bubble and the index comes back", func() {
			answer := make(chan int, 1)
			go func() {
				answer <- h.Choose("Quality", []string{"720p", "480p"})
			}()

			request, ok := h.waitForRequest()().(chooseRequest)
			So(ok, ShouldBeTrue)
			So(request.options, ShouldResemble, []string{"720p", "480p"})

			request.reply <- 1
			So(<-answer, ShouldEqual, 1)
		})

		Convey("Questions are cancelled once the interface is gone", func() {
			close(done)

			text, ok := h.Prompt("users", "Channel")
			So(text, ShouldBeEmpty)
			So(ok, ShouldBeFalse)
			So(h.Choose("Quality", []string{"720p"}), ShouldEqual, quality.Cancelled)
			So(h.waitForRequest()(), ShouldBeNil)
		})
	})
}

func TestListItem(t *testing.T) {
	Convey("Given rows of a listing", t, func() {
		const base = "dlive://"

		Convey("Local rows keep their action and params", func() {
			item := newListItem(listing.Row{
				Label: "mario",
				Path:  listing.BuildURL(base, listing.Params{"action": "user", "username": "mario"}),
			}, base)

			So(item.local, ShouldBeTrue)
			So(item.action, ShouldEqual, "user")
			So(item.username(), ShouldEqual, "mario")
			So(item.FilterValue(), ShouldEqual, "mario")
		})

		Convey("Media rows are not local", func() {
			item := newListItem(listing.Row{
				Label:    "Replay",
				Path:     "https://vod.example.com/replay.m3u8",
				Playable: true,
				Duration: 90,
			}, base)

			So(item.local, ShouldBeFalse)
			So(item.username(), ShouldBeEmpty)
			So(item.Description(), ShouldContainSubstring, "1:30")
		})

		Convey("Continuation rows are recognised", func() {
			item := newListItem(listing.Row{
				Label: dlive.LabelMore,
				Path:  listing.BuildURL(base, listing.Params{"action": "streams", "after": "20"}),
			}, base)

			So(item.more(), ShouldBeTrue)
		})

		Convey("Age restricted rows are tagged", func() {
			item := newListItem(listing.Row{Label: "late show", Path: base, Rating: dlive.LabelAgeRestricted}, base)
			So(item.Title(), ShouldContainSubstring, dlive.LabelAgeRestricted)
		})
	})
}

func TestNotification(t *testing.T) {
	Convey("Recoverable errors become notifications", t, func() {
		text, ok := notification(&dlive.OfflineError{Displayname: "Mario"})
		So(ok, ShouldBeTrue)
		So(text, ShouldNotBeEmpty)

		_, ok = notification(fmt.Errorf("resolve: %w", dlive.ErrUnavailable))
		So(ok, ShouldBeTrue)

		_, ok = notification(dispatch.ErrNoQuery)
		So(ok, ShouldBeTrue)

		text, ok = notification(fmt.Errorf("%w: alcie", dlive.ErrNotFound))
		So(ok, ShouldBeTrue)
		So(text, ShouldContainSubstring, "alcie")

		text, ok = notification(network.Status("fetch manifest", http.StatusBadGateway))
		So(ok, ShouldBeTrue)
		So(text, ShouldContainSubstring, "502")
	})

	Convey("Other errors are shown in full", t, func() {
		_, ok := notification(errors.New("boom"))
		So(ok, ShouldBeFalse)

		_, ok = notification(dispatch.ErrUnknownAction)
		So(ok, ShouldBeFalse)
	})
}
