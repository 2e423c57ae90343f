// Package icon renders the symbols shown next to rows and messages.
//
// The icons.variant setting picks emoji, nerd-font glyphs, plain ASCII,
// kaomoji or Unicode squares.
package icon

import (
	"slices"

	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/style"
	"github.com/spf13/viper"
)

var variants = []string{"emoji", "nerd", "plain", "kaomoji", "squares"}

type glyphs [5]string

// AvailableVariants lists the accepted values of icons.variant.
func AvailableVariants() []string {
	return slices.Clone(variants)
}

// Get renders i in the configured variant. An unknown variant disables icons.
func Get(i Icon) string {
	n := slices.Index(variants, viper.GetString(key.IconsVariant))
	if n < 0 {
		return ""
	}
	return icons[i][n]
}

var accents = map[Icon]func(string) string{
	Fail:     style.Warning,
	Success:  style.Success,
	Live:     style.Live,
	Offline:  style.Offline,
	Category: style.Category,
	Video:    style.Replay,
}

// Colored renders i in the accent of what it stands for, such as a live
// stream or a failure. Icons without an accent are left as they are.
func Colored(i Icon) string {
	glyph := Get(i)
	if accent, ok := accents[i]; ok && glyph != "" {
		return accent(glyph)
	}
	return glyph
}
