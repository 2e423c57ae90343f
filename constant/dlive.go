package constant

// Backend endpoints.
const (
	// GraphQLEndpoint is the public DLive GraphQL API.
	GraphQLEndpoint = "https://graphigo.prd.dlive.tv/"

	// LiveURLTemplate yields the HLS master playlist of a live channel when formatted with its username.
	LiveURLTemplate = "https://live.prd.dlive.tv/hls/live/%s.m3u8"

	// ChannelURLTemplate yields the public web page of a channel.
	ChannelURLTemplate = "https://dlive.tv/%s"
)

// Repository identifies the upstream repository used for release checks.
const Repository = "dlive-cli/dlive"
