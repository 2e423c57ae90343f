// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DLive backend - these keys select the remote endpoints and the shape of every listing request.
const (
	DliveEndpoint       = "dlive.endpoint"
	DliveLiveURL        = "dlive.live_url"
	DliveItemsPerPage   = "dlive.items_per_page"
	DliveShowNSFW       = "dlive.show_nsfw"
	DliveLanguage       = "dlive.language"
	DliveCategoriesSeed = "dlive.categories_seed"
)

// Stream playback - these keys govern rendition selection for live channels.
const (
	StreamQuality = "stream.quality"
)

// Network - these keys tune the shared HTTP transport.
const (
	NetworkTimeout     = "network.timeout"
	NetworkRateLimit   = "network.rate_limit"
	NetworkFingerprint = "network.fingerprint"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchHistorySize          = "search.history_size"
)

// History Tracking - these keys configure the persistence of watched channels.
const (
	HistorySaveOnPlay = "history.save_on_play"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowURLs           = "tui.show_urls"
)

// Mini menu - the prompt based interface.
const (
	MiniPageSize = "mini.page_size"
)

// Media Playback - these keys select and configure the external video player.
const (
	Player     = "player.default"
	PlayerArgs = "player.args"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
