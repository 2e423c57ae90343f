package dlive

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/graphql"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/log"
	"github.com/dlive-cli/dlive/quality"
	"github.com/samber/mo"
)

// Executor runs named GraphQL operations.
type Executor interface {
	Execute(ctx context.Context, name string, params graphql.Params) (graphql.Result, error)
}

// Manifests fetches the renditions of a master playlist.
type Manifests interface {
	Fetch(ctx context.Context, url string) ([]quality.Quality, error)
}

// Settings are read on every call so changes apply immediately.
type Settings interface {
	Int(key string) int
	Bool(key string) bool
	String(key string) string
}

// Service answers every DLive listing and playback request.
type Service struct {
	executor   Executor
	manifests  Manifests
	settings   Settings
	categories *CategoryIndex
}

// NewService builds a service and seeds its category index with the
// first page of categories.
func NewService(ctx context.Context, executor Executor, manifests Manifests, settings Settings) (*Service, error) {
	s := &Service{
		executor:   executor,
		manifests:  manifests,
		settings:   settings,
		categories: NewCategoryIndex(),
	}

	seed, err := s.fetchCategories(ctx, OpCategories, graphql.Params{
		"first": settings.Int(key.DliveCategoriesSeed),
	})
	if err != nil {
		return nil, fmt.Errorf("seed categories: %w", err)
	}

	s.categories.Seed(seed.Slice()...)
	log.Infof("category index seeded with %d categories", s.categories.Len())
	return s, nil
}

// Categories returns the category index.
func (s *Service) Categories() *CategoryIndex {
	return s.categories
}

// LiveURL is the master playlist of a channel's live stream.
func (s *Service) LiveURL(username string) string {
	template := s.settings.String(key.DliveLiveURL)
	if !strings.Contains(template, "%s") {
		template = constant.LiveURLTemplate
	}
	return fmt.Sprintf(template, username)
}

// Stream returns a channel with its live stream, if any.
func (s *Service) Stream(ctx context.Context, username string) (*User, error) {
	return s.user(ctx, OpStream, graphql.Params{"username": username})
}

// Playback is a resolved live stream.
type Playback struct {
	User   *User
	Stream *Livestream
	URL    string
	// Quality is the selected rendition, absent when the master playlist is played.
	Quality  mo.Option[quality.Quality]
	Adaptive bool
}

// Resolve finds the URL to play for a channel's live stream at the given tier.
// An offline channel yields *OfflineError and a failed selection ErrUnavailable.
func (s *Service) Resolve(ctx context.Context, username string, tier quality.Tier, chooser quality.Chooser) (*Playback, error) {
	user, err := s.Stream(ctx, username)
	if err != nil {
		return nil, err
	}

	stream, ok := user.Livestream.Get()
	if !ok {
		return nil, &OfflineError{Displayname: user.Displayname}
	}

	playback := &Playback{
		User:     user,
		Stream:   stream,
		URL:      s.LiveURL(username),
		Quality:  mo.None[quality.Quality](),
		Adaptive: tier == quality.Adaptive,
	}

	if !tier.Valid() || tier.Bypass() {
		return playback, nil
	}

	qualities, err := s.manifests.Fetch(ctx, playback.URL)
	if err != nil {
		return nil, err
	}

	selected, ok := quality.Select(tier, qualities, chooser).Get()
	if !ok {
		log.Warnf("no %s rendition among %d for %s", tier, len(qualities), username)
		return nil, ErrUnavailable
	}

	playback.URL = selected.URI
	playback.Quality = mo.Some(selected)
	return playback, nil
}

// User returns a channel page: its live stream, only on the first page,
// and a page of past broadcasts.
func (s *Service) User(ctx context.Context, username, after string) (mo.Option[*Livestream], *Collection[*PastBroadcast], error) {
	user, err := s.user(ctx, OpUser, s.page(after, graphql.Params{"username": username}))
	if err != nil {
		return mo.None[*Livestream](), nil, err
	}

	live := mo.None[*Livestream]()
	if after == "" || after == FirstCursor {
		live = user.Livestream.Option()
	}

	return live, user.Broadcasts(), nil
}

// Category returns trending streams of one category, labelled with its title.
func (s *Service) Category(ctx context.Context, categoryID int, after string) (*Collection[*Livestream], error) {
	streams, err := s.livestreams(ctx, s.page(after, graphql.Params{
		"categoryID": categoryID,
		"showNSFW":   s.settings.Bool(key.DliveShowNSFW),
	}))
	if err != nil {
		return nil, err
	}

	streams.SetCategory(s.categories.Lookup(categoryID).Title)
	return streams, nil
}

// Livestreams returns trending streams of every category.
func (s *Service) Livestreams(ctx context.Context, after string) (*Collection[*Livestream], error) {
	return s.livestreams(ctx, s.page(after, graphql.Params{
		"showNSFW": s.settings.Bool(key.DliveShowNSFW),
	}))
}

// Featured returns the streams of the front page carousel.
func (s *Service) Featured(ctx context.Context) (*Collection[*Livestream], error) {
	var carousels []struct {
		Item Ref[Livestream] `json:"item"`
	}

	params := graphql.Params{}
	if language := s.settings.String(key.DliveLanguage); language != "" {
		params["userLanguageCode"] = language
	}

	if err := s.query(ctx, OpFeatured, params, &carousels); err != nil {
		return nil, err
	}

	refs := make([]Ref[Livestream], len(carousels))
	for i, carousel := range carousels {
		refs[i] = carousel.Item
	}

	return collect[Livestream](refs, Meta{}), nil
}

// Recommended returns the channels DLive recommends.
func (s *Service) Recommended(ctx context.Context) (*Collection[*User], error) {
	var channels []struct {
		User Ref[User] `json:"user"`
	}

	if err := s.query(ctx, OpRecommended, nil, &channels); err != nil {
		return nil, err
	}

	refs := make([]Ref[User], len(channels))
	for i, channel := range channels {
		refs[i] = channel.User
	}

	return collect[User](refs, Meta{}), nil
}

// AllCategories returns a page of categories and remembers them in the index.
func (s *Service) AllCategories(ctx context.Context, after string) (*Collection[*Category], error) {
	categories, err := s.fetchCategories(ctx, OpCategories, s.page(after, nil))
	if err != nil {
		return nil, err
	}

	s.categories.Update(categories.Slice()...)
	return categories, nil
}

// SearchUsers finds channels matching text.
func (s *Service) SearchUsers(ctx context.Context, text, after string) (*Collection[*User], error) {
	var result struct {
		List     []searchHit `json:"list"`
		PageInfo *PageInfo   `json:"pageInfo"`
	}

	if err := s.query(ctx, OpSearchUsers, s.page(after, graphql.Params{"text": text}), &result); err != nil {
		return nil, err
	}

	refs := make([]Ref[User], len(result.List))
	for i, hit := range result.List {
		refs[i] = hit.user
	}

	return collect[User](refs, page[User]{PageInfo: result.PageInfo}.meta()), nil
}

// SearchCategories finds categories matching text and remembers them in the index.
func (s *Service) SearchCategories(ctx context.Context, text, after string) (*Collection[*Category], error) {
	categories, err := s.fetchCategories(ctx, OpSearchCategories, s.page(after, graphql.Params{"text": text}))
	if err != nil {
		return nil, err
	}

	s.categories.Update(categories.Slice()...)
	return categories, nil
}

// page adds the paging variables to params.
func (s *Service) page(after string, params graphql.Params) graphql.Params {
	if params == nil {
		params = graphql.Params{}
	}

	params["first"] = s.settings.Int(key.DliveItemsPerPage)
	if after != "" {
		params["after"] = after
	}

	return params
}

func (s *Service) user(ctx context.Context, operation string, params graphql.Params) (*User, error) {
	result, err := s.executor.Execute(ctx, operation, params)
	if err != nil {
		return nil, err
	}

	user, err := Parse[User](result.Raw())
	if err != nil {
		return nil, malformed(operation, err)
	}

	value, ok := user.Get()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, params["username"])
	}

	return value, nil
}

func (s *Service) livestreams(ctx context.Context, params graphql.Params) (*Collection[*Livestream], error) {
	var result page[Livestream]
	if err := s.query(ctx, OpLivestreams, params, &result); err != nil {
		return nil, err
	}

	return collect[Livestream](result.List, result.meta()), nil
}

func (s *Service) fetchCategories(ctx context.Context, operation string, params graphql.Params) (*Collection[*Category], error) {
	var result page[Category]
	if err := s.query(ctx, operation, params, &result); err != nil {
		return nil, err
	}

	return collect[Category](result.List, result.meta()), nil
}

func (s *Service) query(ctx context.Context, operation string, params graphql.Params, into any) error {
	result, err := s.executor.Execute(ctx, operation, params)
	if err != nil {
		return err
	}

	if err := result.Decode(into); err != nil {
		return malformed(operation, err)
	}

	return nil
}

func malformed(operation string, err error) error {
	return &graphql.MalformedResponseError{Operation: operation, Reason: err.Error()}
}

// searchHit is one result of a user search: either a user or a live
// stream whose creator is the user.
type searchHit struct {
	user Ref[User]
}

func (h *searchHit) UnmarshalJSON(raw []byte) error {
	var stream struct {
		Creator Ref[User] `json:"creator"`
	}

	if err := json.Unmarshal(raw, &stream); err != nil {
		return err
	}

	if stream.Creator.Present() {
		h.user = stream.Creator
		return nil
	}

	return h.user.UnmarshalJSON(raw)
}
