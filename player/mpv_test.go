package player

import (
	"bufio"
	"strings"
	"testing"

	"github.com/dlive-cli/dlive/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestMPV(t *testing.T) {
	Convey("Given an mpv player", t, func() {
		mpv := NewMPV("mpv", "--volume=50")
		mpv.socketPath = "/tmp/dlive-test.sock"

		Convey("It should not be running before playing", func() {
			So(mpv.IsRunning(), ShouldBeFalse)
			So(mpv.Close(), ShouldBeNil)
		})

		Convey("It should build arguments for a fixed rendition", func() {
			args, err := mpv.args(Target{
				URL:     "https://live.example.com/720.m3u8",
				Title:   "Alice -\nSpeedrun",
				Headers: map[string]string{"Referer": "https://dlive.tv/", "Origin": "https://dlive.tv"},
			})
			So(err, ShouldBeNil)
			So(args, ShouldContain, "--input-ipc-server=/tmp/dlive-test.sock")
			So(args, ShouldContain, "--force-media-title=Alice - Speedrun")
			So(args, ShouldContain, "--http-header-fields=Origin: https://dlive.tv,Referer: https://dlive.tv/")
			So(args, ShouldNotContain, AdaptiveArgs[0])
			So(args[len(args)-3:], ShouldResemble, []string{"--volume=50", "--", "https://live.example.com/720.m3u8"})
		})

		Convey("It should let mpv switch renditions when adaptive", func() {
			args, err := mpv.args(Target{URL: "https://live.example.com/alice.m3u8", Adaptive: true})
			So(err, ShouldBeNil)
			So(args, ShouldContain, "--hls-bitrate=max")
		})

		Convey("It should reject unsafe targets", func() {
			for _, target := range []string{"", "--script=evil.lua", "file:///etc/passwd", "https://a\nb"} {
				_, err := mpv.args(Target{URL: target})
				So(err, ShouldNotBeNil)
			}
		})
	})

	Convey("The configured player should be chosen", t, func() {
		viper.Set(key.Player, "iina")
		_, ok := New().(*IINA)
		So(ok, ShouldBeTrue)

		viper.Set(key.Player, "/usr/local/bin/mpv")
		player, ok := New().(*MPV)
		So(ok, ShouldBeTrue)
		So(player.executable, ShouldEqual, "/usr/local/bin/mpv")

		viper.Set(key.Player, "mpv")
	})

	Convey("IINA should forward adaptive options to its mpv", t, func() {
		args := NewIINA().args(Target{URL: "https://live.example.com/alice.m3u8", Adaptive: true})
		So(args, ShouldContain, "--mpv-hls-bitrate=max")
		So(args[len(args)-1], ShouldEqual, "https://live.example.com/alice.m3u8")
	})
}

func TestIPC(t *testing.T) {
	Convey("Replies should be matched by request id", t, func() {
		lines := strings.Join([]string{
			`{"event": "property-change", "name": "pause"}`,
			`{"request_id": 1, "error": "success", "data": 1.5}`,
			`{"request_id": 2, "error": "success", "data": 42.25}`,
		}, "\n")

		data, err := readReply(bufio.NewScanner(strings.NewReader(lines)), 2)
		So(err, ShouldBeNil)
		So(data, ShouldEqual, 42.25)
	})

	Convey("Errors should be reported", t, func() {
		_, err := readReply(bufio.NewScanner(strings.NewReader(`{"request_id": 3, "error": "property unavailable"}`)), 3)
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "property unavailable")

		_, err = readReply(bufio.NewScanner(strings.NewReader("")), 4)
		So(err, ShouldNotBeNil)
	})
}
