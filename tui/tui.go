// Package tui provides the primary terminal user interface.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dlive-cli/dlive/dispatch"
	"github.com/samber/mo"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Start is the first path to open, the home folder when empty.
	Start string
	// Connect builds the dispatcher once the interface is showing.
	Connect func(ctx context.Context, options ...dispatch.Option) (*dispatch.Dispatcher, error)
	// Suggest completes search texts, optional.
	Suggest func(kind, partial string) mo.Option[string]
}

// Run starts the interface and blocks until the user quits.
func Run(ctx context.Context, options *Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bubble := newBubble(ctx, options)
	bubble.setState(loadingState)
	bubble.progressStatus = "Connecting to DLive"

	_, err := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	bubble.closePlayer()
	return err
}
