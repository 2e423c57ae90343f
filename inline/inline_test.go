package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/graphql"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/quality"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeExecutor map[string]string

func (f fakeExecutor) Execute(_ context.Context, name string, _ graphql.Params) (graphql.Result, error) {
	payload, ok := f[name]
	if !ok {
		return graphql.Result{}, &graphql.UnknownOperationError{Name: name}
	}
	return graphql.NewResult(json.RawMessage(payload)), nil
}

type noManifests struct{}

func (noManifests) Fetch(context.Context, string) ([]quality.Quality, error) {
	return nil, nil
}

type settings map[string]int

func (s settings) Int(k string) int     { return s[k] }
func (s settings) Bool(string) bool     { return false }
func (s settings) String(string) string { return "" }

const stream = `{"title": "Speedrun", "category": {"backendID": 7, "title": "Minecraft"}, "creator": {"username": "alice", "displayname": "Alice"}}`

func newDispatcher() *dispatch.Dispatcher {
	executor := fakeExecutor{
		dlive.OpCategories:  `{"pageInfo": {"endCursor": "", "hasNextPage": false}, "list": [{"backendID": 7, "title": "Minecraft"}]}`,
		dlive.OpLivestreams: `{"pageInfo": {"endCursor": "20", "hasNextPage": true}, "list": [` + stream + `]}`,
	}
	s := settings{key.DliveItemsPerPage: 20}
	service := lo.Must(dlive.NewService(context.Background(), executor, noManifests{}, s))
	return dispatch.New(service, s, dispatch.WithBaseURL("dlive://"))
}

func TestRun(t *testing.T) {
	Convey("Given a dispatcher", t, func() {
		var buf bytes.Buffer
		options := &Options{
			Out:        &buf,
			Dispatcher: newDispatcher(),
			Path:       listing.BuildURL("dlive://", listing.Params{"action": "streams"}),
		}

		Convey("Rows are written one per line", func() {
			So(Run(context.Background(), options), ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldHaveLength, 2)
			So(lines[0], ShouldStartWith, "Alice")
			So(lines[1], ShouldStartWith, dlive.LabelMore)
		})

		Convey("Rows can be filtered", func() {
			options.RowsFilter = mo.Some(lo.Must(ParseRowsFilter("first")))
			So(Run(context.Background(), options), ShouldBeNil)
			So(strings.Count(buf.String(), "\n"), ShouldEqual, 1)
		})

		Convey("The picked row is followed", func() {
			options.Path = listing.BuildURL("dlive://", listing.Params{"action": "categories"})
			options.Picker = mo.Some(lo.Must(ParseRowPicker("first", "")))
			options.Json = true
			So(Run(context.Background(), options), ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Path, ShouldContainSubstring, "action=category")
			So(output.Rows, ShouldNotBeEmpty)
		})

		Convey("A picker without a match fails", func() {
			options.Picker = mo.Some(lo.Must(ParseRowPicker("exact", "nobody")))
			So(Run(context.Background(), options), ShouldEqual, ErrNothingPicked)
		})
	})
}

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty listing", func() {
			var buf bytes.Buffer
			err := writeJson(&buf, &Output{Path: "dlive://"})
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Path, ShouldEqual, "dlive://")
			So(output.Rows, ShouldHaveLength, 0)
		})

		Convey("Should print the playback URL in plain mode", func() {
			var buf bytes.Buffer
			err := writePlain(&buf, &Output{Playback: &dispatch.Playback{URL: "https://live.example.com/a.m3u8"}})
			So(err, ShouldBeNil)
			So(buf.String(), ShouldEqual, "https://live.example.com/a.m3u8\n")
		})
	})
}

func TestParsers(t *testing.T) {
	rows := []listing.Row{{Label: "Alpha"}, {Label: "Beta"}, {Label: "Gamma"}, {Label: dlive.LabelMore}}

	Convey("Row pickers", t, func() {
		pick := func(kind, value string) string {
			row, _ := lo.Must(ParseRowPicker(kind, value))(rows)
			return row.Label
		}

		So(pick("first", ""), ShouldEqual, "Alpha")
		So(pick("last", ""), ShouldEqual, "Gamma")
		So(pick("exact", "beta"), ShouldEqual, "Beta")
		So(pick("index", "99"), ShouldEqual, dlive.LabelMore)

		_, err := ParseRowPicker("index", "x")
		So(err, ShouldNotBeNil)
		_, err = ParseRowPicker("random", "")
		So(err, ShouldNotBeNil)
	})

	Convey("Rows filters", t, func() {
		filter := func(description string) []string {
			filtered := lo.Must(lo.Must(ParseRowsFilter(description))(rows))
			return lo.Map(filtered, func(row listing.Row, _ int) string { return row.Label })
		}

		So(filter("first"), ShouldResemble, []string{"Alpha"})
		So(filter("last"), ShouldResemble, []string{dlive.LabelMore})
		So(filter("all"), ShouldHaveLength, 4)
		So(filter("1-2"), ShouldResemble, []string{"Beta", "Gamma"})
		So(filter("@mm@"), ShouldResemble, []string{"Gamma"})
		So(filter("0"), ShouldResemble, []string{"Alpha"})
		So(filter("9"), ShouldBeEmpty)

		_, err := ParseRowsFilter("nonsense")
		So(err, ShouldNotBeNil)
	})

	Convey("Schema describes the output", t, func() {
		schema := Schema()
		So(schema, ShouldNotBeNil)
		data, err := json.Marshal(schema)
		So(err, ShouldBeNil)
		So(string(data), ShouldContainSubstring, "playback")
	})
}
