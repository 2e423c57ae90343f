package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Search
	Live
	Offline
	User
	Category
	Video
	Folder
	Play
)

// icons holds one glyph per variant, in the order of variants.
var icons = map[Icon]glyphs{
	Fail:     {"🥀", "", "x", "(×﹏×)", "🟥"},
	Success:  {"🎉", "", "v", "(ᵔ◡ᵔ)", "🟩"},
	Progress: {"⏳", "", "...", "(＾▽＾)", "🟦"},
	Search:   {"🔍", "", "/", "(ง'̀-'́)ง", "🟫"},
	Live:     {"🔴", "", "LIVE", "(◉‿◉)", "🟥"},
	Offline:  {"💤", "", "off", "(－_－) zzZ", "⬛"},
	User:     {"👤", "", "@", "(・ω・)", "🟧"},
	Category: {"🎮", "", "#", "(⌐■_■)", "🟦"},
	Video:    {"📼", "", ">", "(▀̿Ĺ̯▀̿ ̿)", "🟩"},
	Folder:   {"📁", "", "+", "(っ˘ڡ˘ς)", "🟨"},
	Play:     {"▶️", "", ">", "ᕕ( ᐛ )ᕗ", "🟩"},
}
