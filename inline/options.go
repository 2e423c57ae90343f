// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type (
	// RowPicker chooses the row whose path is opened next.
	RowPicker func([]listing.Row) (listing.Row, bool)
	// RowsFilter narrows the rows that are written.
	RowsFilter func([]listing.Row) ([]listing.Row, error)
)

type Options struct {
	Out        io.Writer
	Dispatcher *dispatch.Dispatcher
	Path       string
	Json       bool
	Picker     mo.Option[RowPicker]
	RowsFilter mo.Option[RowsFilter]
}

// ParseRowPicker builds a picker. Rows labelled "More..." are never picked by first or last.
func ParseRowPicker(kind, value string) (RowPicker, error) {
	content := func(rows []listing.Row) []listing.Row {
		return lo.Filter(rows, func(row listing.Row, _ int) bool {
			return !isContinuation(row)
		})
	}

	switch kind {
	case "first":
		return func(rows []listing.Row) (listing.Row, bool) {
			rows = content(rows)
			if len(rows) == 0 {
				return listing.Row{}, false
			}
			return rows[0], true
		}, nil
	case "last":
		return func(rows []listing.Row) (listing.Row, bool) {
			rows = content(rows)
			if len(rows) == 0 {
				return listing.Row{}, false
			}
			return rows[len(rows)-1], true
		}, nil
	case "exact":
		return func(rows []listing.Row) (listing.Row, bool) {
			return lo.Find(rows, func(row listing.Row) bool {
				return strings.EqualFold(row.Label, value)
			})
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(rows []listing.Row) (listing.Row, bool) {
			if len(rows) == 0 {
				return listing.Row{}, false
			}
			return rows[util.Min(idx, uint64(len(rows)-1))], true
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}

// ParseRowsFilter parses a rows selector.
// Format: "first", "last", "all", "1-5", "@text@" or a single index.
func ParseRowsFilter(description string) (RowsFilter, error) {
	if description == "first" {
		return func(rows []listing.Row) ([]listing.Row, error) {
			if len(rows) == 0 {
				return rows, nil
			}
			return rows[:1], nil
		}, nil
	}
	if description == "last" {
		return func(rows []listing.Row) ([]listing.Row, error) {
			if len(rows) == 0 {
				return rows, nil
			}
			return rows[len(rows)-1:], nil
		}, nil
	}
	if description == "all" {
		return func(rows []listing.Row) ([]listing.Row, error) {
			return rows, nil
		}, nil
	}

	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil {
				return func(rows []listing.Row) ([]listing.Row, error) {
					start := util.Min(from, uint64(len(rows)))
					end := util.Min(to+1, uint64(len(rows)))
					if start > end {
						return []listing.Row{}, nil
					}
					return rows[start:end], nil
				}, nil
			}
		}
	}

	if len(description) > 1 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(rows []listing.Row) ([]listing.Row, error) {
			return lo.Filter(rows, func(row listing.Row, _ int) bool {
				return strings.Contains(strings.ToLower(row.Label), sub)
			}), nil
		}, nil
	}

	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(rows []listing.Row) ([]listing.Row, error) {
			if uint64(len(rows)) <= idx {
				return []listing.Row{}, nil
			}
			return []listing.Row{rows[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid rows filter: %s", description)
}
