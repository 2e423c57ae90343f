package network

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/dlive-cli/dlive/constant"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func compress(encoding, body string) []byte {
	var buf bytes.Buffer
	switch encoding {
	case "br":
		w := brotli.NewWriter(&buf)
		lo.Must(w.Write([]byte(body)))
		lo.Must0(w.Close())
	case "gzip":
		w := gzip.NewWriter(&buf)
		lo.Must(w.Write([]byte(body)))
		lo.Must0(w.Close())
	default:
		buf.WriteString(body)
	}
	return buf.Bytes()
}

func TestClient(t *testing.T) {
	Convey("Given a server honouring Accept-Encoding", t, func() {
		var seen http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Clone()
			encoding := r.URL.Query().Get("encoding")
			if encoding != "" {
				w.Header().Set("Content-Encoding", encoding)
			}
			_, _ = w.Write(compress(encoding, "hello dlive"))
		}))
		defer server.Close()

		client := New(Options{})

		read := func(query string) string {
			resp, err := client.Get(server.URL + query)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			return string(lo.Must(io.ReadAll(resp.Body)))
		}

		Convey("It should advertise brotli and gzip", func() {
			So(read(""), ShouldEqual, "hello dlive")
			So(seen.Get("Accept-Encoding"), ShouldEqual, "br, gzip")
		})

		Convey("It should decode brotli bodies", func() {
			So(read("?encoding=br"), ShouldEqual, "hello dlive")
		})

		Convey("It should decode gzip bodies", func() {
			So(read("?encoding=gzip"), ShouldEqual, "hello dlive")
		})

		Convey("It should set the default user agent", func() {
			read("")
			So(seen.Get("User-Agent"), ShouldEqual, constant.UserAgent)
		})

		Convey("It should keep an explicit user agent", func() {
			req := lo.Must(http.NewRequest(http.MethodGet, server.URL, nil))
			req.Header.Set("User-Agent", "custom")
			resp := lo.Must(client.Do(req))
			_ = resp.Body.Close()
			So(seen.Get("User-Agent"), ShouldEqual, "custom")
		})
	})
}

type countingTripper struct{ calls int }

func (c *countingTripper) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls++
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(""))}, nil
}

func TestLimiter(t *testing.T) {
	Convey("Given a limiter", t, func() {
		Convey("A non-positive rate should not wrap the transport", func() {
			next := &countingTripper{}
			So(newLimiter(next, 0), ShouldEqual, next)
		})

		Convey("It should stop waiting when the context is done", func() {
			next := &countingTripper{}
			rt := newLimiter(next, 1)

			req := lo.Must(http.NewRequest(http.MethodGet, "http://example.invalid", nil))
			_, err := rt.RoundTrip(req)
			So(err, ShouldBeNil)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			_, err = rt.RoundTrip(req.WithContext(ctx))
			So(err, ShouldNotBeNil)
			So(next.calls, ShouldEqual, 1)
		})
	})
}
