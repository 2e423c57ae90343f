// Package history remembers the channels whose streams were played.
package history

import (
	"strings"
	"time"

	"github.com/dlive-cli/dlive/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Channel is a watched channel.
type Channel struct {
	Username    string    `json:"username"`
	Displayname string    `json:"displayname"`
	Avatar      string    `json:"avatar"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	WatchedAt   time.Time `json:"watched_at"`
	Times       int       `json:"times"`
}

func (c *Channel) encode() string {
	return strings.ToLower(c.Username)
}

func (c *Channel) String() string {
	if c.Displayname == "" {
		return c.Username
	}
	return c.Displayname
}

// Store persists watched channels keyed by username.
type Store struct {
	cacher *gache.Cache[map[string]*Channel]
	now    func() time.Time
}

// New returns a store backed by the file at path.
func New(path string) *Store {
	return &Store{
		cacher: filesystem.Persisted[map[string]*Channel](path, 0),
		now:    time.Now,
	}
}

// Get returns every watched channel keyed by lowercase username.
func (s *Store) Get() (map[string]*Channel, error) {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Channel), nil
	}
	return cached, nil
}

// Recent returns the watched channels, most recently watched first.
func (s *Store) Recent() ([]*Channel, error) {
	saved, err := s.Get()
	if err != nil {
		return nil, err
	}

	channels := lo.Values(saved)
	slices.SortFunc(channels, func(a, b *Channel) int {
		return b.WatchedAt.Compare(a.WatchedAt)
	})

	return channels, nil
}

// Save records that channel was watched now.
func (s *Store) Save(channel Channel) error {
	saved, err := s.Get()
	if err != nil {
		return err
	}

	channel.WatchedAt = s.now()
	channel.Times = 1
	if existing, ok := saved[channel.encode()]; ok {
		channel.Times += existing.Times
	}

	saved[channel.encode()] = &channel
	return s.cacher.Set(saved)
}

// Remove forgets one channel.
func (s *Store) Remove(username string) error {
	saved, err := s.Get()
	if err != nil {
		return err
	}

	delete(saved, strings.ToLower(username))
	return s.cacher.Set(saved)
}

// Clear forgets every channel.
func (s *Store) Clear() error {
	return s.cacher.Set(make(map[string]*Channel))
}
