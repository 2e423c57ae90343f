// Package player launches external media players for resolved streams.
// mpv is driven through its JSON-IPC socket; IINA is launched and left alone.
package player

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dlive-cli/dlive/key"
	"github.com/spf13/viper"
)

// Target is what to play.
type Target struct {
	URL   string
	Title string
	// Adaptive lets the player switch renditions of a master playlist.
	Adaptive bool
	Headers  map[string]string
}

// Player encapsulates a media playback backend.
type Player interface {
	// Play starts playback of target, replacing what is playing.
	Play(target Target) error

	// TogglePause inverts the pause state.
	TogglePause() error

	// GetTimePos returns the playback position in seconds.
	GetTimePos() (float64, error)

	// IsRunning reports whether the player process is alive.
	IsRunning() bool

	// Close terminates the player.
	Close() error

	// Wait returns a channel closed when the player exits.
	Wait() <-chan struct{}
}

// New returns the player named by the player.default setting.
// Any name other than iina is treated as an mpv compatible executable.
func New() Player {
	executable := viper.GetString(key.Player)
	if executable == "" {
		executable = "mpv"
	}

	extra := viper.GetStringSlice(key.PlayerArgs)
	if strings.EqualFold(strings.TrimSuffix(filepath.Base(executable), filepath.Ext(executable)), "iina") {
		return NewIINA(extra...)
	}

	return NewMPV(executable, extra...)
}

// headerFields renders headers as mpv's --http-header-fields value.
func headerFields(headers map[string]string) string {
	fields := make([]string, 0, len(headers))
	for k, v := range headers {
		fields = append(fields, fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, ",", "%2C")))
	}
	slices.Sort(fields)
	return strings.Join(fields, ",")
}
