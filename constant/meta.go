// Package constant holds names, endpoints and build metadata of the CLI.
package constant

import _ "embed"

const (
	// Dlive names the binary, its config directory and its env prefix.
	Dlive = "dlive"

	Version = "0.3.1"

	// UserAgent is sent to DLive unless the request carries its own.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo heads the root command help.
//
//go:embed ascii.txt
var AsciiArtLogo string

// Values of runtime.GOOS that pick a player install hint or a browser opener.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
