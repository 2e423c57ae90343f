package config

import (
	"time"

	"github.com/dlive-cli/dlive/key"
	"github.com/spf13/viper"
)

// Settings exposes the live viper state through typed getters.
// It satisfies the settings collaborator consumed by the dispatcher.
type Settings struct{}

func (Settings) Int(k string) int       { return viper.GetInt(k) }
func (Settings) Bool(k string) bool     { return viper.GetBool(k) }
func (Settings) String(k string) string { return viper.GetString(k) }

// Timeout returns the configured per-request timeout.
func Timeout() time.Duration {
	seconds := viper.GetInt(key.NetworkTimeout)
	if seconds <= 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}
