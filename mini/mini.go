// Package mini implements a lightweight, prompt based interface for browsing and playback.
package mini

import (
	"context"
	"errors"

	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/player"
	"github.com/dlive-cli/dlive/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

var truncateAt = 100

// Options configures a mini session.
type Options struct {
	// Start is the first path to open, the home folder when empty.
	Start   string
	Connect func(ctx context.Context, options ...dispatch.Option) (*dispatch.Dispatcher, error)
	Suggest func(kind, partial string) mo.Option[string]
}

type mini struct {
	ctx        context.Context
	dispatcher *dispatch.Dispatcher

	state         state
	statesHistory util.Stack[state]

	path      string
	paths     util.Stack[string]
	pushed    bool
	directory *dispatch.Directory
	playback  *dispatch.Playback
	player    player.Player
}

func newMini(ctx context.Context) *mini {
	return &mini{
		ctx:           ctx,
		statesHistory: util.Stack[state]{},
		paths:         util.Stack[string]{},
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{loadState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

// open moves to path, remembering the current one when push is set.
func (m *mini) open(path string, push bool) {
	m.pushed = push && m.path != ""
	if m.pushed {
		m.paths.Push(m.path)
	}
	m.path = path
	m.newState(loadState)
}

// Run starts the menu loop and blocks until the user quits.
func Run(ctx context.Context, options *Options) error {
	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	erase := progress("Connecting to DLive..")
	dispatcher, err := options.Connect(
		ctx,
		dispatch.WithPrompter(&prompter{suggest: options.Suggest}),
		dispatch.WithChooser(chooser{}),
	)
	erase()
	if err != nil {
		return err
	}

	m := newMini(ctx)
	m.dispatcher = dispatcher
	m.path = lo.Ternary(options.Start != "", options.Start, listing.BuildURL(dispatcher.BaseURL(), listing.Params{"action": dispatch.DefaultAction}))
	m.state = loadState

	defer m.closePlayer()

	for m.state != quitState {
		if err := m.handleState(); err != nil {
			if errors.Is(err, errInterrupted) {
				return nil
			}
			return err
		}
	}

	return nil
}

func (m *mini) handleState() error {
	switch m.state {
	case loadState:
		return m.handleLoadState()
	case selectState:
		return m.handleSelectState()
	case playState:
		return m.handlePlayState()
	}

	return nil
}

func (m *mini) closePlayer() {
	if m.player != nil {
		_ = m.player.Close()
		m.player = nil
	}
}
