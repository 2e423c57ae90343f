package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dlive-cli/dlive/network"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

var table = Table{
	"user": {Query: "query { user }", Path: []string{"user"}},
	"deep": {Query: "query { globalInfo }", Path: []string{"globalInfo", "recommendChannels"}},
}

type stub struct {
	server   *httptest.Server
	bodies   []map[string]any
	headers  []http.Header
	response string
	status   int
	delay    time.Duration
}

func newStub() *stub {
	s := &stub{status: http.StatusOK}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.Unmarshal(lo.Must(io.ReadAll(r.Body)), &body)
		s.bodies = append(s.bodies, body)
		s.headers = append(s.headers, r.Header.Clone())

		if s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-r.Context().Done():
				return
			}
		}

		w.WriteHeader(s.status)
		_, _ = io.WriteString(w, s.response)
	}))
	return s
}

func TestExecute(t *testing.T) {
	Convey("Given an executor talking to a stub endpoint", t, func() {
		s := newStub()
		defer s.server.Close()

		var warnings []*RemoteQueryError
		executor := New(s.server.URL, table, WithWarningSink(func(err *RemoteQueryError) {
			warnings = append(warnings, err)
		}))
		ctx := context.Background()

		Convey("It should send the query with json headers", func() {
			s.response = `{"data":{"user":{"username":"alice"}}}`
			result, err := executor.Execute(ctx, "user", Params{"username": "alice"})

			So(err, ShouldBeNil)
			So(string(result.Raw()), ShouldEqual, `{"username":"alice"}`)
			So(s.bodies[0]["query"], ShouldEqual, "query { user }")
			So(s.bodies[0]["variables"], ShouldResemble, map[string]any{"username": "alice"})
			So(s.headers[0].Get("Content-Type"), ShouldEqual, "application/json")
			So(s.headers[0].Get("Accept"), ShouldEqual, "application/json")
		})

		Convey("It should omit variables when there are no params", func() {
			s.response = `{"data":{"user":null}}`
			for _, params := range []Params{nil, {}} {
				_, err := executor.Execute(ctx, "user", params)
				So(err, ShouldBeNil)
			}

			So(s.bodies, ShouldHaveLength, 2)
			for _, body := range s.bodies {
				So(body, ShouldNotContainKey, "variables")
			}
		})

		Convey("It should walk the whole key path", func() {
			s.response = `{"data":{"globalInfo":{"recommendChannels":[{"user":{}}]}}}`
			result, err := executor.Execute(ctx, "deep", nil)
			So(err, ShouldBeNil)
			So(string(result.Raw()), ShouldEqual, `[{"user":{}}]`)
		})

		Convey("A null payload should not be an error", func() {
			s.response = `{"data":{"user":null}}`
			result, err := executor.Execute(ctx, "user", nil)
			So(err, ShouldBeNil)
			So(result.IsNull(), ShouldBeTrue)
		})

		Convey("A missing key should be a malformed response", func() {
			s.response = `{"data":{"globalInfo":{}}}`
			_, err := executor.Execute(ctx, "deep", nil)

			var malformed *MalformedResponseError
			So(errors.As(err, &malformed), ShouldBeTrue)
			So(malformed.Path, ShouldResemble, []string{"globalInfo", "recommendChannels"})
		})

		Convey("Missing data without errors should be a malformed response", func() {
			s.response = `{}`
			_, err := executor.Execute(ctx, "user", nil)

			var malformed *MalformedResponseError
			So(errors.As(err, &malformed), ShouldBeTrue)
		})

		Convey("Errors without data should fail with the first message", func() {
			cases := map[string]string{
				`{"errors":[{"message":"boom"},{"message":"second"}]}`: "boom",
				`{"errors":[],"data":null}`:                            "Unknown error (empty 'errors' list)",
				`{"errors":[{"path":["user"]}]}`:                       "Unknown error (missing error 'message')",
				`{"errors":[{"message":""}]}`:                          "Unknown error (empty error 'message')",
				`{"errors":["plain text"]}`:                            "plain text",
			}

			for response, message := range cases {
				s.response = response
				_, err := executor.Execute(ctx, "user", nil)

				var remote *RemoteQueryError
				So(errors.As(err, &remote), ShouldBeTrue)
				So(remote.Message, ShouldEqual, message)
			}
			So(warnings, ShouldBeEmpty)
		})

		Convey("Errors with data should warn exactly once and succeed", func() {
			s.response = `{"data":{"user":{"username":"bob"}},"errors":[{"message":"partial"}]}`
			result, err := executor.Execute(ctx, "user", nil)

			So(err, ShouldBeNil)
			So(string(result.Raw()), ShouldEqual, `{"username":"bob"}`)
			So(warnings, ShouldHaveLength, 1)
			So(warnings[0].Message, ShouldEqual, "partial")
		})

		Convey("A null errors member should be ignored", func() {
			s.response = `{"data":{"user":{}},"errors":null}`
			_, err := executor.Execute(ctx, "user", nil)
			So(err, ShouldBeNil)
			So(warnings, ShouldBeEmpty)
		})

		Convey("An unknown operation should be rejected before any request", func() {
			_, err := executor.Execute(ctx, "nope", nil)

			var unknownErr *UnknownOperationError
			So(errors.As(err, &unknownErr), ShouldBeTrue)
			So(unknownErr.Name, ShouldEqual, "nope")
			So(s.bodies, ShouldBeEmpty)
		})

		Convey("A non-2xx status should be a transport error", func() {
			s.status = http.StatusBadGateway
			_, err := executor.Execute(ctx, "user", nil)

			var transportErr *TransportError
			So(errors.As(err, &transportErr), ShouldBeTrue)
			So(transportErr.StatusCode, ShouldEqual, http.StatusBadGateway)
			So(transportErr.Timeout(), ShouldBeFalse)
			So(s.bodies, ShouldHaveLength, 1)
		})

		Convey("A slow endpoint should time out", func() {
			s.delay = time.Second
			s.response = `{"data":{"user":{}}}`
			slow := New(s.server.URL, table, WithTimeout(20*time.Millisecond))

			_, err := slow.Execute(ctx, "user", nil)
			So(IsTimeout(err), ShouldBeTrue)
		})

		Convey("Waiting on the rate limit past the deadline should time out", func() {
			s.response = `{"data":{"user":{}}}`
			client := network.New(network.Options{RateLimit: 0.5})
			paced := New(s.server.URL, table, WithClient(client), WithTimeout(50*time.Millisecond))

			_, err := paced.Execute(ctx, "user", nil)
			So(err, ShouldBeNil)

			_, err = paced.Execute(ctx, "user", nil)
			So(IsTimeout(err), ShouldBeTrue)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
			So(s.bodies, ShouldHaveLength, 1)
		})

		Convey("A refused connection should be a transport error", func() {
			closed := httptest.NewServer(http.NotFoundHandler())
			closed.Close()

			_, err := New(closed.URL, table).Execute(ctx, "user", nil)

			var transportErr *TransportError
			So(errors.As(err, &transportErr), ShouldBeTrue)
			So(transportErr.StatusCode, ShouldEqual, 0)
		})

		Convey("A token should be sent when available", func() {
			s.response = `{"data":{"user":{}}}`
			authed := New(s.server.URL, table, WithToken(func() (string, bool) { return "secret", true }))

			_, err := authed.Execute(ctx, "user", nil)
			So(err, ShouldBeNil)
			So(s.headers[0].Get("Authorization"), ShouldEqual, "secret")
		})
	})
}

func TestResult(t *testing.T) {
	Convey("Given results", t, func() {
		So(NewResult(nil).IsNull(), ShouldBeTrue)
		So(NewResult(json.RawMessage(" null ")).IsNull(), ShouldBeTrue)
		So(NewResult(json.RawMessage(`{}`)).IsNull(), ShouldBeFalse)

		_, ok := NewResult(json.RawMessage(`[1]`)).Field("a")
		So(ok, ShouldBeFalse)

		field, ok := NewResult(json.RawMessage(`{"a":{"b":1}}`)).Field("a")
		So(ok, ShouldBeTrue)

		var decoded map[string]int
		So(field.Decode(&decoded), ShouldBeNil)
		So(decoded["b"], ShouldEqual, 1)
	})
}
