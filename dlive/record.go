// Package dlive models the DLive platform: its GraphQL operations, the
// records they return, and the service that turns them into listings.
package dlive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dlive-cli/dlive/listing"
	"github.com/samber/mo"
	"github.com/spf13/cast"
)

// Kind tags the variants of Record.
type Kind int

const (
	KindFolder Kind = iota
	KindCategory
	KindLanguage
	KindUser
	KindLivestream
	KindPastBroadcast
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "folder"
	case KindCategory:
		return "category"
	case KindLanguage:
		return "language"
	case KindUser:
		return "user"
	case KindLivestream:
		return "livestream"
	case KindPastBroadcast:
		return "pastBroadcast"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Record is implemented by every DLive object that can appear in a listing.
// The set is closed: only types of this package implement it.
type Record interface {
	Kind() Kind
	// Row renders the record for ctx. An absent row means the record is
	// not listable.
	Row(ctx listing.Context) mo.Option[listing.Row]

	sealed()
}

// Parse decodes raw into a *T. Null, empty input and an empty object are
// absent records.
func Parse[T any](raw []byte) (mo.Option[*T], error) {
	if absent(raw) {
		return mo.None[*T](), nil
	}

	value := new(T)
	if err := json.Unmarshal(raw, value); err != nil {
		return mo.None[*T](), err
	}

	return mo.Some(value), nil
}

func absent(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}

	if trimmed[0] != '{' {
		return false
	}

	var object map[string]json.RawMessage
	return json.Unmarshal(trimmed, &object) == nil && len(object) == 0
}

// Ref is a nested record that may be absent.
type Ref[T any] struct {
	value mo.Option[*T]
}

// RefOf wraps a present record.
func RefOf[T any](value *T) Ref[T] {
	if value == nil {
		return Ref[T]{value: mo.None[*T]()}
	}
	return Ref[T]{value: mo.Some(value)}
}

func (r *Ref[T]) UnmarshalJSON(raw []byte) error {
	value, err := Parse[T](raw)
	if err != nil {
		return err
	}

	r.value = value
	return nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if value, ok := r.value.Get(); ok {
		return json.Marshal(value)
	}
	return []byte("null"), nil
}

// Get returns the record and whether it is present.
func (r Ref[T]) Get() (*T, bool) {
	return r.value.Get()
}

// Present reports whether the record exists.
func (r Ref[T]) Present() bool {
	return r.value.IsPresent()
}

// Option exposes the underlying option.
func (r Ref[T]) Option() mo.Option[*T] {
	return r.value
}

// Timestamp is a point in time sent by DLive as epoch milliseconds,
// usually encoded as a string.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(raw []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return err
	}

	if value == nil || value == "" {
		return nil
	}

	millis, err := cast.ToInt64E(value)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}

	t.Time = time.UnixMilli(millis)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(cast.ToString(t.UnixMilli()))
}

// PageInfo is the cursor state of a paginated list.
type PageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// page is the wire shape of every paginated list.
type page[T any] struct {
	List     []Ref[T]  `json:"list"`
	PageInfo *PageInfo `json:"pageInfo"`
}

func (p page[T]) meta() Meta {
	if p.PageInfo == nil {
		return Meta{}
	}
	return Meta{EndCursor: p.PageInfo.EndCursor, HasNextPage: p.PageInfo.HasNextPage}
}

// collect converts a decoded page into a collection, keeping absent items
// in place so the collection can skip them.
func collect[T any, R interface {
	*T
	Record
}](refs []Ref[T], meta Meta) *Collection[R] {
	items := make([]mo.Option[R], len(refs))
	for i, ref := range refs {
		if value, ok := ref.Get(); ok {
			items[i] = mo.Some(R(value))
		} else {
			items[i] = mo.None[R]()
		}
	}

	return NewCollection(items, meta)
}
