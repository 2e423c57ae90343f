// Package search keeps the recent search texts of every search kind.
package search

import (
	"strings"

	"github.com/dlive-cli/dlive/filesystem"
	"github.com/dlive-cli/dlive/key"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// entry is one remembered search. Entries are kept oldest first.
type entry struct {
	Text string `json:"text"`
	Uses int    `json:"uses"`
}

type searches = map[string][]*entry

// Store persists search texts grouped by kind.
type Store struct {
	cacher *gache.Cache[searches]
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{
		cacher: filesystem.Persisted[searches](path, 0),
	}
}

func (s *Store) load() (searches, error) {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return nil, err
	}

	if expired || cached == nil {
		return make(searches), nil
	}

	return cached, nil
}

// Remember records text under kind, moving it to the most recent position.
func (s *Store) Remember(kind, text string) error {
	text = sanitize(text)
	if text == "" {
		return nil
	}

	saved, err := s.load()
	if err != nil {
		return err
	}

	uses := 1
	entries := lo.Reject(saved[kind], func(e *entry, _ int) bool {
		if e.Text == text {
			uses += e.Uses
			return true
		}
		return false
	})

	entries = append(entries, &entry{Text: text, Uses: uses})
	if limit := viper.GetInt(key.SearchHistorySize); limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	saved[kind] = entries
	return s.cacher.Set(saved)
}

// Recent returns the texts of kind, most recent first, up to the
// configured history size. Remember keeps no more than that on disk.
func (s *Store) Recent(kind string) ([]string, error) {
	saved, err := s.load()
	if err != nil {
		return nil, err
	}

	entries := saved[kind]
	limit := viper.GetInt(key.SearchHistorySize)

	recent := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if limit > 0 && len(recent) == limit {
			break
		}
		recent = append(recent, entries[i].Text)
	}

	return recent, nil
}

// Remove forgets one text of kind.
func (s *Store) Remove(kind, text string) error {
	saved, err := s.load()
	if err != nil {
		return err
	}

	text = sanitize(text)
	saved[kind] = lo.Reject(saved[kind], func(e *entry, _ int) bool {
		return e.Text == text
	})

	return s.cacher.Set(saved)
}

// Clear forgets every text of kind, or of every kind when kind is empty.
func (s *Store) Clear(kind string) error {
	if kind == "" {
		return s.cacher.Set(make(searches))
	}

	saved, err := s.load()
	if err != nil {
		return err
	}

	delete(saved, kind)
	return s.cacher.Set(saved)
}

// Suggest returns the most used remembered text of kind that fuzzily
// matches the partial input.
func (s *Store) Suggest(kind, partial string) mo.Option[string] {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return mo.None[string]()
	}

	partial = sanitize(partial)
	if partial == "" {
		return mo.None[string]()
	}

	saved, err := s.load()
	if err != nil {
		return mo.None[string]()
	}

	matches := lo.Filter(saved[kind], func(e *entry, _ int) bool {
		return e.Text != partial && fuzzy.Match(partial, e.Text)
	})

	if len(matches) == 0 {
		return mo.None[string]()
	}

	best := lo.MaxBy(matches, func(a, b *entry) bool {
		return a.Uses > b.Uses
	})

	return mo.Some(best.Text)
}

func sanitize(text string) string {
	return strings.TrimSpace(text)
}
