package style

import "github.com/dlive-cli/dlive/color"

// Views pick a role from here rather than a raw color.
var (
	AccentColor = color.Gold
	ChoiceColor = color.Amber
	TitleColor  = color.Ink
	TextColor   = color.Paper
	ErrorColor  = color.Coral

	LiveColor     = color.Coral
	OfflineColor  = color.Ash
	CategoryColor = color.Sky
	ReplayColor   = color.Violet
)
