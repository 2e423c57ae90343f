package quality

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dlive-cli/dlive/network"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

const master = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360
360p/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=6000000,RESOLUTION=1920x1080
https://cdn.example.com/1080p/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=96000,CODECS="mp4a.40.2"
audio/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2800000,RESOLUTION=1280x720
720p/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=2500000,RESOLUTION=1280x720
720p-alt/index.m3u8
`

func renditions(heights ...int) []Quality {
	return lo.Map(heights, func(h int, i int) Quality {
		return Quality{URI: "q" + string(rune('a'+i)), Width: h * 16 / 9, Height: h, Bandwidth: h * 1000}
	})
}

func TestTier(t *testing.T) {
	Convey("Tiers", t, func() {
		So(Auto.Bypass(), ShouldBeTrue)
		So(Adaptive.Bypass(), ShouldBeTrue)
		So(P720.Bypass(), ShouldBeFalse)
		So(Ask.Bypass(), ShouldBeFalse)
		So(Tier(9).Valid(), ShouldBeFalse)
		So(P480.String(), ShouldEqual, "480p")

		Convey("ParseTier accepts names and numbers", func() {
			So(lo.Must(ParseTier("720p")), ShouldEqual, P720)
			So(lo.Must(ParseTier(" ASK ")), ShouldEqual, Ask)
			So(lo.Must(ParseTier("6")), ShouldEqual, Adaptive)
			So(lo.Must(ParseTier("02")), ShouldEqual, P720)

			_, err := ParseTier("7")
			So(err, ShouldNotBeNil)
			_, err = ParseTier("4k")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestQuality(t *testing.T) {
	Convey("A quality should render as WxH@Bbps", t, func() {
		So(Quality{Width: 1280, Height: 720, Bandwidth: 2800000}.String(), ShouldEqual, "1280x720@2800000bps")
	})
}

func TestBestMatch(t *testing.T) {
	Convey("Given renditions sorted by height", t, func() {
		qualities := renditions(1080, 720, 480)

		Convey("An exact match should win", func() {
			So(BestMatch(P720, qualities).MustGet().Height, ShouldEqual, 720)
			So(BestMatch(P1080, qualities).MustGet().Height, ShouldEqual, 1080)
		})

		Convey("The closest lower rendition should be picked", func() {
			So(BestMatch(P720, renditions(1080, 480)).MustGet().Height, ShouldEqual, 480)
		})

		Convey("Nothing under the cap should select nothing", func() {
			So(BestMatch(P360, qualities).IsAbsent(), ShouldBeTrue)
		})

		Convey("Tiers without a cap should select nothing", func() {
			So(BestMatch(Auto, qualities).IsAbsent(), ShouldBeTrue)
			So(BestMatch(Ask, qualities).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestSelect(t *testing.T) {
	Convey("Given renditions", t, func() {
		qualities := renditions(1080, 720, 480)

		Convey("Fixed tiers should not ask", func() {
			asked := false
			chooser := ChooserFunc(func(string, []string) int {
				asked = true
				return 0
			})

			So(Select(P480, qualities, chooser).MustGet().URI, ShouldEqual, "qc")
			So(asked, ShouldBeFalse)
		})

		Convey("Ask should present every rendition in order", func() {
			var heading string
			var options []string
			chooser := ChooserFunc(func(h string, o []string) int {
				heading, options = h, o
				return 1
			})

			So(Select(Ask, qualities, chooser).MustGet().Height, ShouldEqual, 720)
			So(heading, ShouldEqual, Heading)
			So(options, ShouldResemble, lo.Map(qualities, func(q Quality, _ int) string { return q.String() }))
		})

		Convey("A cancelled choice should select nothing", func() {
			chooser := ChooserFunc(func(string, []string) int { return Cancelled })
			So(Select(Ask, qualities, chooser).IsAbsent(), ShouldBeTrue)
		})

		Convey("An out of range choice should select nothing", func() {
			chooser := ChooserFunc(func(string, []string) int { return len(qualities) })
			So(Select(Ask, qualities, chooser).IsAbsent(), ShouldBeTrue)
			So(Select(Ask, qualities, nil).IsAbsent(), ShouldBeTrue)
		})

		Convey("Empty input should select nothing", func() {
			So(Select(P1080, nil, nil).IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given a master playlist", t, func() {
		base := lo.Must(url.Parse("https://live.example.com/hls/live/alice.m3u8"))
		qualities, err := Parse(strings.NewReader(master), base)
		So(err, ShouldBeNil)

		Convey("Variants without a resolution should be dropped", func() {
			So(qualities, ShouldHaveLength, 4)
		})

		Convey("Variants should be sorted by height, stable for ties", func() {
			heights := lo.Map(qualities, func(q Quality, _ int) int { return q.Height })
			So(heights, ShouldResemble, []int{1080, 720, 720, 360})
			So(qualities[1].Bandwidth, ShouldEqual, 2800000)
			So(qualities[2].Bandwidth, ShouldEqual, 2500000)
		})

		Convey("Relative URIs should be resolved against the playlist", func() {
			So(qualities[0].URI, ShouldEqual, "https://cdn.example.com/1080p/index.m3u8")
			So(qualities[3].URI, ShouldEqual, "https://live.example.com/hls/live/360p/index.m3u8")
		})
	})

	Convey("A media playlist should yield nothing", t, func() {
		media := "#EXTM3U\n#EXT-X-TARGETDURATION:2\n#EXTINF:2.0,\nseg0.ts\n"
		qualities, err := Parse(strings.NewReader(media), nil)
		So(err, ShouldBeNil)
		So(qualities, ShouldBeEmpty)
	})
}

func TestFetcher(t *testing.T) {
	Convey("Given a server hosting a manifest", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/missing.m3u8" {
				http.NotFound(w, r)
				return
			}
			_, _ = io.WriteString(w, master)
		}))
		defer server.Close()

		fetcher := NewFetcher(server.Client())

		Convey("It should parse the manifest", func() {
			qualities, err := fetcher.Fetch(context.Background(), server.URL+"/hls/alice.m3u8")
			So(err, ShouldBeNil)
			So(qualities, ShouldHaveLength, 4)
			So(qualities[3].URI, ShouldEqual, server.URL+"/hls/360p/index.m3u8")
		})

		Convey("A missing manifest should be a transport error", func() {
			_, err := fetcher.Fetch(context.Background(), server.URL+"/missing.m3u8")

			var transportErr *network.TransportError
			So(errors.As(err, &transportErr), ShouldBeTrue)
			So(transportErr.StatusCode, ShouldEqual, http.StatusNotFound)
			So(transportErr.Timeout(), ShouldBeFalse)
		})

		Convey("A refused connection should be a transport error", func() {
			closed := httptest.NewServer(http.NotFoundHandler())
			closed.Close()

			_, err := fetcher.Fetch(context.Background(), closed.URL+"/hls/alice.m3u8")

			var transportErr *network.TransportError
			So(errors.As(err, &transportErr), ShouldBeTrue)
			So(transportErr.StatusCode, ShouldEqual, 0)
		})

		Convey("An expired context should be a timeout", func() {
			ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
			defer cancel()

			_, err := fetcher.Fetch(ctx, server.URL+"/hls/alice.m3u8")
			So(network.IsTimeout(err), ShouldBeTrue)
		})
	})
}
