// Package dispatch routes navigation paths to the DLive service and turns
// the results into listings or playbacks.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/history"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/log"
	"github.com/dlive-cli/dlive/quality"
)

// DefaultAction runs when a path names no action.
const DefaultAction = "home"

var (
	// ErrUnknownAction is returned for paths naming an action that does not exist.
	ErrUnknownAction = errors.New("unknown action")
	// ErrMissingParam is returned when an action lacks a required parameter.
	ErrMissingParam = errors.New("missing parameter")
	// ErrNoQuery is returned when a search prompt is cancelled or left empty.
	ErrNoQuery = errors.New("no search query")
)

// Settings are read on every dispatch.
type Settings interface {
	Int(key string) int
	Bool(key string) bool
	String(key string) string
}

// Prompter asks the user for the text of a search of the given kind.
type Prompter interface {
	Prompt(kind, heading string) (text string, ok bool)
}

// Searches remembers search texts per search kind.
type Searches interface {
	Remember(kind, text string) error
	Recent(kind string) ([]string, error)
}

// Watched remembers played channels.
type Watched interface {
	Save(channel history.Channel) error
	Recent() ([]*history.Channel, error)
}

type handler func(d *Dispatcher, ctx context.Context, params listing.Params) (Outcome, error)

// Dispatcher runs one navigation action per call.
type Dispatcher struct {
	service  *dlive.Service
	settings Settings
	baseURL  string
	prompter Prompter
	chooser  quality.Chooser
	searches Searches
	watched  Watched
	actions  map[string]handler
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithBaseURL sets the base of every row path.
func WithBaseURL(base string) Option {
	return func(d *Dispatcher) { d.baseURL = base }
}

// WithPrompter sets who is asked for search texts.
func WithPrompter(prompter Prompter) Option {
	return func(d *Dispatcher) { d.prompter = prompter }
}

// WithChooser sets who picks a rendition when the quality is "ask".
func WithChooser(chooser quality.Chooser) Option {
	return func(d *Dispatcher) { d.chooser = chooser }
}

// WithSearches sets the search history store.
func WithSearches(searches Searches) Option {
	return func(d *Dispatcher) { d.searches = searches }
}

// WithWatched sets the watched channels store.
func WithWatched(watched Watched) Option {
	return func(d *Dispatcher) { d.watched = watched }
}

// New returns a dispatcher over service.
func New(service *dlive.Service, settings Settings, options ...Option) *Dispatcher {
	d := &Dispatcher{
		service:  service,
		settings: settings,
		baseURL:  constant.Dlive + "://",
		actions: map[string]handler{
			"home":              (*Dispatcher).home,
			"featured":          (*Dispatcher).featured,
			"recommended":       (*Dispatcher).recommended,
			"streams":           (*Dispatcher).livestreams,
			"livestreams":       (*Dispatcher).livestreams,
			"categories":        (*Dispatcher).categories,
			"category":          (*Dispatcher).category,
			"user":              (*Dispatcher).user,
			"stream":            (*Dispatcher).stream,
			"search":            (*Dispatcher).search,
			"search_history":    (*Dispatcher).searchHistory,
			"search_users":      (*Dispatcher).searchUsers,
			"search_categories": (*Dispatcher).searchCategories,
			"watched":           (*Dispatcher).watchedChannels,
		},
	}

	for _, option := range options {
		option(d)
	}

	return d
}

// BaseURL is the base of every row path.
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// Service returns the underlying service.
func (d *Dispatcher) Service() *dlive.Service {
	return d.service
}

// Actions lists the known action names, sorted.
func (d *Dispatcher) Actions() []string {
	names := make([]string, 0, len(d.actions))
	for name := range d.actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch runs the action named by path, a row path or a bare query
// string such as "action=user&username=alice".
func (d *Dispatcher) Dispatch(ctx context.Context, path string) (Outcome, error) {
	params, err := listing.ParseQuery(path)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}

	action := params["action"]
	if action == "" {
		action = DefaultAction
	}

	run, ok := d.actions[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	entry := log.WithFields(log.Fields{"action": action, "params": params.Encode()})
	entry.Debug("dispatching")

	outcome, err := run(d, ctx, params)
	if err != nil {
		entry.Warn(err)
		return nil, err
	}

	return outcome, nil
}

func (d *Dispatcher) context(action string) listing.Context {
	return listing.Context{BaseURL: d.baseURL, Action: action}
}

// listRows renders a collection and appends a continuation row that keeps
// params and moves the cursor, when another page exists.
func listRows[R dlive.Record](d *Dispatcher, collection *dlive.Collection[R], action string, params listing.Params) []listing.Row {
	rows := slices.Collect(collection.Rows(d.context(action)))

	if next, ok := collection.Next(params); ok {
		rows = append(rows, listing.Row{
			Label:  dlive.LabelMore,
			Path:   listing.BuildURL(d.baseURL, next),
			Folder: true,
			Plot:   dlive.LabelMore,
		})
	}

	return rows
}

func list[R dlive.Record](d *Dispatcher, collection *dlive.Collection[R], action string, params listing.Params) *Directory {
	return &Directory{
		Rows:     listRows(d, collection, action, params),
		Content:  collection.Content(),
		Category: collection.Category(),
	}
}

func required(params listing.Params, name string) (string, error) {
	value := strings.TrimSpace(params[name])
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return value, nil
}

func (d *Dispatcher) home(_ context.Context, params listing.Params) (Outcome, error) {
	return list(d, dlive.Home(), "", params), nil
}

func (d *Dispatcher) featured(ctx context.Context, params listing.Params) (Outcome, error) {
	streams, err := d.service.Featured(ctx)
	if err != nil {
		return nil, err
	}
	return list(d, streams, "stream", params), nil
}

func (d *Dispatcher) recommended(ctx context.Context, params listing.Params) (Outcome, error) {
	users, err := d.service.Recommended(ctx)
	if err != nil {
		return nil, err
	}
	return list(d, users, "user", params), nil
}

func (d *Dispatcher) livestreams(ctx context.Context, params listing.Params) (Outcome, error) {
	streams, err := d.service.Livestreams(ctx, params["after"])
	if err != nil {
		return nil, err
	}
	return list(d, streams, "stream", params), nil
}

func (d *Dispatcher) categories(ctx context.Context, params listing.Params) (Outcome, error) {
	categories, err := d.service.AllCategories(ctx, params["after"])
	if err != nil {
		return nil, err
	}
	return list(d, categories, "category", params), nil
}

func (d *Dispatcher) category(ctx context.Context, params listing.Params) (Outcome, error) {
	raw, err := required(params, "categoryID")
	if err != nil {
		return nil, err
	}

	id, err := dlive.ParseID(raw)
	if err != nil {
		return nil, fmt.Errorf("categoryID %q: %w", raw, err)
	}

	streams, err := d.service.Category(ctx, id, params["after"])
	if err != nil {
		return nil, err
	}
	return list(d, streams, "stream", params), nil
}

func (d *Dispatcher) user(ctx context.Context, params listing.Params) (Outcome, error) {
	username, err := required(params, "username")
	if err != nil {
		return nil, err
	}

	live, broadcasts, err := d.service.User(ctx, username, params["after"])
	if err != nil {
		return nil, err
	}

	var rows []listing.Row
	if stream, ok := live.Get(); ok {
		if row, ok := stream.Row(d.context("stream")).Get(); ok {
			rows = append(rows, row)
		}
	}

	rows = append(rows, listRows(d, broadcasts, "", params)...)
	return &Directory{
		Rows:     rows,
		Content:  broadcasts.Content(),
		Category: broadcasts.Category(),
	}, nil
}

// tier is the quality of a stream path, falling back to the configured one.
func (d *Dispatcher) tier(params listing.Params) (quality.Tier, error) {
	if raw := params["quality"]; raw != "" {
		return quality.ParseTier(raw)
	}
	return quality.Tier(d.settings.Int(key.StreamQuality)), nil
}

func (d *Dispatcher) stream(ctx context.Context, params listing.Params) (Outcome, error) {
	username, err := required(params, "username")
	if err != nil {
		return nil, err
	}

	tier, err := d.tier(params)
	if err != nil {
		return nil, err
	}

	playback, err := d.service.Resolve(ctx, username, tier, d.chooser)
	if err != nil {
		return nil, err
	}

	if d.watched != nil && d.settings.Bool(key.HistorySaveOnPlay) {
		channel := history.Channel{
			Username:    playback.User.Username,
			Displayname: playback.User.Displayname,
			Avatar:      playback.User.Avatar,
			Title:       playback.Stream.Title,
		}
		if category, ok := playback.Stream.Category.Get(); ok {
			channel.Category = category.Title
		}
		if err := d.watched.Save(channel); err != nil {
			log.Warnf("save watched channel %s: %s", username, err)
		}
	}

	return &Playback{
		Row:      playback.Stream.Playable(playback.URL),
		URL:      playback.URL,
		Adaptive: playback.Adaptive,
		Username: playback.User.Username,
	}, nil
}

func (d *Dispatcher) search(_ context.Context, params listing.Params) (Outcome, error) {
	return list(d, dlive.SearchFolders(), "", params), nil
}

func searchAction(kind string) (string, error) {
	switch kind {
	case dlive.SearchKindUsers, dlive.SearchKindCategories:
		return "search_" + kind, nil
	default:
		return "", fmt.Errorf("%w: search kind %q", ErrUnknownAction, kind)
	}
}

// searchHistory lists a "new search" row followed by recent texts of one kind.
func (d *Dispatcher) searchHistory(_ context.Context, params listing.Params) (Outcome, error) {
	kind, err := required(params, "query")
	if err != nil {
		return nil, err
	}

	action, err := searchAction(kind)
	if err != nil {
		return nil, err
	}

	rows := []listing.Row{{
		Label:  dlive.LabelNewSearch,
		Path:   listing.BuildURL(d.baseURL, listing.Params{"action": action}),
		Folder: true,
		Plot:   dlive.LabelNewSearch,
	}}

	if d.searches != nil {
		recent, err := d.searches.Recent(kind)
		if err != nil {
			log.Warnf("read %s search history: %s", kind, err)
		}

		for _, text := range recent {
			rows = append(rows, listing.Row{
				Label:  text,
				Path:   listing.BuildURL(d.baseURL, listing.Params{"action": action, "text": text}),
				Folder: true,
				Plot:   text,
			})
		}
	}

	return &Directory{Rows: rows, Content: "files"}, nil
}

// searchText returns the text of a search path, prompting for it when absent.
func (d *Dispatcher) searchText(kind string, params listing.Params) (string, error) {
	text := strings.TrimSpace(params["text"])
	if text != "" {
		return text, nil
	}

	if d.prompter == nil {
		return "", ErrNoQuery
	}

	heading := dlive.LabelSearchUsers
	if kind == dlive.SearchKindCategories {
		heading = dlive.LabelSearchCategories
	}

	text, ok := d.prompter.Prompt(kind, heading)
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return "", ErrNoQuery
	}

	if d.searches != nil {
		if err := d.searches.Remember(kind, text); err != nil {
			log.Warnf("remember %s search %q: %s", kind, text, err)
		}
	}

	return text, nil
}

func (d *Dispatcher) searchUsers(ctx context.Context, params listing.Params) (Outcome, error) {
	text, err := d.searchText(dlive.SearchKindUsers, params)
	if err != nil {
		return nil, err
	}

	users, err := d.service.SearchUsers(ctx, text, params["after"])
	if err != nil {
		return nil, err
	}
	return list(d, users, "user", params.With("text", text)), nil
}

func (d *Dispatcher) searchCategories(ctx context.Context, params listing.Params) (Outcome, error) {
	text, err := d.searchText(dlive.SearchKindCategories, params)
	if err != nil {
		return nil, err
	}

	categories, err := d.service.SearchCategories(ctx, text, params["after"])
	if err != nil {
		return nil, err
	}
	return list(d, categories, "category", params.With("text", text)), nil
}

func (d *Dispatcher) watchedChannels(_ context.Context, _ listing.Params) (Outcome, error) {
	directory := &Directory{Rows: []listing.Row{}, Content: "files", Category: dlive.LabelWatched}
	if d.watched == nil {
		return directory, nil
	}

	channels, err := d.watched.Recent()
	if err != nil {
		return nil, err
	}

	for _, channel := range channels {
		plot := channel.String()
		if channel.Title != "" {
			plot += "\n" + channel.Title
		}

		directory.Rows = append(directory.Rows, listing.Row{
			Label:  channel.String(),
			Path:   d.context("user").URL(listing.Params{"username": channel.Username}),
			Folder: true,
			Plot:   plot + "\nLast watched " + channel.WatchedAt.Format("2006-01-02 15:04"),
			Thumb:  channel.Avatar,
			Poster: channel.Avatar,
		})
	}

	return directory, nil
}
