package dlive

import (
	"iter"
	"slices"

	"github.com/dlive-cli/dlive/listing"
	"github.com/samber/mo"
)

const (
	// FirstCursor is the cursor of the first page.
	FirstCursor = "-1"

	defaultContent = "videos"
)

// Meta describes a page of records.
type Meta struct {
	EndCursor   string
	HasNextPage bool
	// Content is the host content type, "videos" unless set.
	Content string
	// Category is the heading shown above the listing, if any.
	Category string
}

// Collection is one page of records plus its pagination state.
type Collection[R Record] struct {
	items []mo.Option[R]
	meta  Meta
}

// NewCollection builds a collection, filling unset metadata with defaults.
func NewCollection[R Record](items []mo.Option[R], meta Meta) *Collection[R] {
	if meta.EndCursor == "" {
		meta.EndCursor = FirstCursor
	}
	if meta.Content == "" {
		meta.Content = defaultContent
	}

	return &Collection[R]{items: items, meta: meta}
}

// CollectionOf builds a collection from present records.
func CollectionOf[R Record](meta Meta, records ...R) *Collection[R] {
	items := make([]mo.Option[R], len(records))
	for i, record := range records {
		items[i] = mo.Some(record)
	}
	return NewCollection(items, meta)
}

func (c *Collection[R]) EndCursor() string { return c.meta.EndCursor }

func (c *Collection[R]) HasNextPage() bool { return c.meta.HasNextPage }

func (c *Collection[R]) Content() string { return c.meta.Content }

func (c *Collection[R]) Category() string { return c.meta.Category }

// SetCategory replaces the heading.
func (c *Collection[R]) SetCategory(category string) {
	c.meta.Category = category
}

// Records yields present records in order. The sequence can be ranged over
// any number of times.
func (c *Collection[R]) Records() iter.Seq[R] {
	return func(yield func(R) bool) {
		for _, item := range c.items {
			record, ok := item.Get()
			if !ok {
				continue
			}

			if !yield(record) {
				return
			}
		}
	}
}

// Slice collects Records.
func (c *Collection[R]) Slice() []R {
	return slices.Collect(c.Records())
}

// Rows yields the rendered rows of every record that has one.
func (c *Collection[R]) Rows(ctx listing.Context) iter.Seq[listing.Row] {
	return func(yield func(listing.Row) bool) {
		for record := range c.Records() {
			row, ok := record.Row(ctx).Get()
			if !ok {
				continue
			}

			if !yield(row) {
				return
			}
		}
	}
}

// Next returns params for the following page: a copy of params with "after"
// set to the end cursor. It reports false on the last page.
func (c *Collection[R]) Next(params listing.Params) (listing.Params, bool) {
	if !c.meta.HasNextPage {
		return nil, false
	}

	return params.With("after", c.meta.EndCursor), true
}
