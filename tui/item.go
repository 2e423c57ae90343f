package tui

import (
	"fmt"
	"strings"

	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/style"
	"github.com/dlive-cli/dlive/util"
	"github.com/spf13/viper"
)

// listItem implements list.Item for a listing row.
type listItem struct {
	row    listing.Row
	action string
	params listing.Params
	// local rows point back to the dispatcher, others are media URLs.
	local bool
}

func newListItem(row listing.Row, base string) *listItem {
	item := &listItem{row: row, local: strings.HasPrefix(row.Path, base)}
	if item.local {
		if params, err := listing.ParseQuery(row.Path); err == nil {
			item.params = params
			item.action = params["action"]
		}
	}
	return item
}

func (t *listItem) icon() string {
	switch {
	case t.row.Playable && t.local:
		return icon.Colored(icon.Live)
	case t.row.Playable:
		return icon.Colored(icon.Video)
	case t.action == "user":
		return icon.Get(icon.User)
	case t.action == "category":
		return icon.Colored(icon.Category)
	case strings.HasPrefix(t.action, "search"):
		return icon.Get(icon.Search)
	default:
		return icon.Get(icon.Folder)
	}
}

// more reports whether the row continues the listing.
func (t *listItem) more() bool {
	return t.row.Label == dlive.LabelMore && t.params["after"] != ""
}

// username is the channel a row refers to, if any.
func (t *listItem) username() string {
	return t.params["username"]
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	if t.more() {
		return style.Faint(t.row.Label)
	}

	title := fmt.Sprintf("%s %s", t.icon(), t.row.Label)
	if t.row.Rating == dlive.LabelAgeRestricted {
		title += " " + style.Warning(t.row.Rating)
	}
	return title
}

// Description retrieves the secondary line for the list item.
func (t *listItem) Description() string {
	lines := strings.Split(t.row.Plot, "\n")
	if len(lines) > 0 && (lines[0] == t.row.Label || strings.HasSuffix(t.row.Label, lines[0])) {
		lines = lines[1:]
	}

	var parts []string
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}

	if t.row.Duration > 0 {
		parts = append(parts, util.Clock(t.row.Duration))
	}

	description := strings.Join(parts, " • ")
	if viper.GetBool(key.TUIShowURLs) {
		description = strings.TrimSpace(description + " " + style.Faint(t.row.Path))
	}
	return description
}

// FilterValue returns the string used for list filtering.
func (t *listItem) FilterValue() string {
	return t.row.Label
}

// choiceItem is one option of a chooser list.
type choiceItem struct {
	index int
	label string
}

func (c *choiceItem) Title() string       { return c.label }
func (c *choiceItem) Description() string { return "" }
func (c *choiceItem) FilterValue() string { return c.label }
