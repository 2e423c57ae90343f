package open

import (
	"testing"

	"github.com/dlive-cli/dlive/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestOpen(t *testing.T) {
	Convey("Channel pages should be built from the username", t, func() {
		So(ChannelURL(" alice "), ShouldEqual, "https://dlive.tv/alice")
	})

	Convey("Each platform should have a handler", t, func() {
		for goos, name := range map[string]string{
			constant.Darwin:  "open",
			constant.Linux:   "xdg-open",
			constant.Android: "termux-open",
		} {
			cmd, ok := command(goos, "https://dlive.tv/alice")
			So(ok, ShouldBeTrue)
			So(cmd.Args, ShouldResemble, []string{name, "https://dlive.tv/alice"})
		}

		_, ok := command("plan9", "x")
		So(ok, ShouldBeFalse)
	})
}
