package quality

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dlive-cli/dlive/log"
	"github.com/dlive-cli/dlive/network"
	"github.com/grafov/m3u8"
	"golang.org/x/exp/slices"
)

// Parse reads a master playlist. Relative variant URIs are resolved
// against base when it is not nil. A media playlist yields no qualities.
func Parse(r io.Reader, base *url.URL) ([]Quality, error) {
	playlist, listType, err := m3u8.DecodeFrom(r, false)
	if err != nil {
		return nil, fmt.Errorf("decode playlist: %w", err)
	}

	if listType != m3u8.MASTER {
		return nil, nil
	}

	return FromPlaylist(playlist.(*m3u8.MasterPlaylist), base), nil
}

// FromPlaylist keeps the variants that declare a resolution, sorted by
// height from highest to lowest. Variants of equal height keep their order.
func FromPlaylist(master *m3u8.MasterPlaylist, base *url.URL) []Quality {
	var qualities []Quality
	for _, variant := range master.Variants {
		if variant == nil || variant.Iframe || variant.Resolution == "" {
			continue
		}

		var width, height int
		if _, err := fmt.Sscanf(variant.Resolution, "%dx%d", &width, &height); err != nil {
			log.Warnf("skipping variant with resolution %q: %s", variant.Resolution, err)
			continue
		}

		qualities = append(qualities, Quality{
			URI:       resolve(base, variant.URI),
			Width:     width,
			Height:    height,
			Bandwidth: int(variant.Bandwidth),
		})
	}

	slices.SortStableFunc(qualities, func(a, b Quality) int {
		return b.Height - a.Height
	})

	return qualities
}

func resolve(base *url.URL, uri string) string {
	if base == nil {
		return uri
	}

	ref, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	return base.ResolveReference(ref).String()
}

const operation = "fetch manifest"

// Fetcher downloads master playlists.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher using client, or the shared client when nil.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = network.Client
	}
	return &Fetcher{client: client}
}

// Fetch downloads and parses the master playlist at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]Quality, error) {
	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	log.Infof("fetching manifest %s", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, network.Failed(operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, network.Status(operation, resp.StatusCode)
	}

	return Parse(resp.Body, base)
}
