// Package listing models the rows a host renders in its navigation UI
// and the plugin-style URLs that route a row back to an action.
package listing

import (
	"maps"
	"net/url"
	"strings"
)

// Row is one entry of a directory listing.
type Row struct {
	Label    string `json:"label"`
	Path     string `json:"path"`
	Folder   bool   `json:"folder"`
	Playable bool   `json:"playable"`
	Plot     string `json:"plot,omitempty"`
	Thumb    string `json:"thumb,omitempty"`
	Poster   string `json:"poster,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Duration int    `json:"duration,omitempty"`
	Rating   string `json:"rating,omitempty"`
}

// Context is what a record needs to render itself: the base URL rows
// point back to and the action their activation triggers.
type Context struct {
	BaseURL string
	Action  string
}

// URL builds a row path for the context action with extra params.
func (c Context) URL(params Params) string {
	return BuildURL(c.BaseURL, params.With("action", c.Action))
}

// Params are the query parameters of a row path.
type Params map[string]string

// Clone returns an independent copy.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// With returns a copy with key set to value.
func (p Params) With(key, value string) Params {
	clone := p.Clone()
	clone[key] = value
	return clone
}

// Without returns a copy without key.
func (p Params) Without(key string) Params {
	clone := p.Clone()
	delete(clone, key)
	return clone
}

// Encode renders params as a query string with sorted keys.
func (p Params) Encode() string {
	values := make(url.Values, len(p))
	for k, v := range p {
		values.Set(k, v)
	}
	return values.Encode()
}

// BuildURL joins base and params the way plugin paths are written: base?query.
func BuildURL(base string, params Params) string {
	if len(params) == 0 {
		return base
	}
	return base + "?" + params.Encode()
}

// ParseQuery decodes a path or query string into params.
// Only the part after the first "?" is considered when one is present.
func ParseQuery(path string) (Params, error) {
	query := path
	if i := strings.IndexByte(path, '?'); i >= 0 {
		query = path[i+1:]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	params := make(Params, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params, nil
}
