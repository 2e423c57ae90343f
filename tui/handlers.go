package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/graphql"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/log"
	"github.com/dlive-cli/dlive/network"
	"github.com/dlive-cli/dlive/player"
	"github.com/dlive-cli/dlive/style"
	"github.com/samber/lo"
)

type connectedMsg struct {
	dispatcher *dispatch.Dispatcher
}

type dispatchedMsg struct {
	path    string
	outcome dispatch.Outcome
	push    bool
}

type failedMsg struct {
	err error
}

type playerStartedMsg struct {
	player   player.Player
	playback *dispatch.Playback
}

type playerExitedMsg struct {
	player player.Player
}

func (b *statefulBubble) connect() tea.Cmd {
	return func() tea.Msg {
		dispatcher, err := b.options.Connect(b.ctx, dispatch.WithPrompter(b.host), dispatch.WithChooser(b.host))
		if err != nil {
			return failedMsg{err: err}
		}
		return connectedMsg{dispatcher: dispatcher}
	}
}

// open dispatches path. A pushed listing can be left with back.
func (b *statefulBubble) open(path string, push bool) tea.Cmd {
	b.progressStatus = "Loading"
	b.newState(loadingState)

	dispatcher := b.dispatcher
	ctx := b.ctx
	return tea.Batch(b.startLoading(), func() tea.Msg {
		log.Info("opening " + path)
		outcome, err := dispatcher.Dispatch(ctx, path)
		if err != nil {
			return failedMsg{err: err}
		}
		return dispatchedMsg{path: path, outcome: outcome, push: push}
	})
}

func (b *statefulBubble) play(playback *dispatch.Playback) tea.Cmd {
	b.closePlayer()
	b.progressStatus = fmt.Sprintf("Starting player for %s", playback.Row.Label)
	b.newState(loadingState)

	return tea.Batch(b.startLoading(), func() tea.Msg {
		p := player.New()
		err := p.Play(player.Target{
			URL:      playback.URL,
			Title:    playback.Row.Label,
			Adaptive: playback.Adaptive,
		})
		if err != nil {
			return failedMsg{err: err}
		}
		return playerStartedMsg{player: p, playback: playback}
	})
}

func waitForPlayerExit(p player.Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Wait()
		return playerExitedMsg{player: p}
	}
}

// showDirectory replaces the current listing, remembering it first when push is set.
func (b *statefulBubble) showDirectory(path string, directory *dispatch.Directory, push bool) tea.Cmd {
	index := 0
	if b.current != nil {
		if push {
			b.current.index = b.browseC.Index()
			b.pages.Push(b.current)
		} else if b.current.path == path {
			index = b.browseC.Index()
		}
	}

	base := b.dispatcher.BaseURL()
	items := make([]list.Item, len(directory.Rows))
	for i, row := range directory.Rows {
		items[i] = newListItem(row, base)
	}

	return b.showPage(&page{
		path:     path,
		category: directory.Category,
		items:    items,
		index:    index,
	})
}

func (b *statefulBubble) showPage(p *page) tea.Cmd {
	b.current = p
	b.browseC.ResetFilter()
	b.browseC.Title = lo.Ternary(p.category != "", p.category, b.rootTitle)
	cmd := b.browseC.SetItems(p.items)
	if p.index > 0 && p.index < len(p.items) {
		b.browseC.Select(p.index)
	} else {
		b.browseC.ResetSelected()
	}
	return cmd
}

// notification is the message shown for errors that leave the listing usable.
func notification(err error) (string, bool) {
	var (
		offline   *dlive.OfflineError
		remote    *graphql.RemoteQueryError
		transport *network.TransportError
	)

	switch {
	case errors.As(err, &offline):
		return icon.Colored(icon.Offline) + " " + style.Offline(offline.Error()), true
	case errors.Is(err, dlive.ErrNotFound):
		return icon.Colored(icon.Fail) + " " + err.Error(), true
	case errors.Is(err, dlive.ErrUnavailable):
		return icon.Colored(icon.Fail) + " Selected stream quality is unavailable", true
	case errors.Is(err, dispatch.ErrNoQuery):
		return "Search cancelled", true
	case errors.As(err, &remote), errors.As(err, &transport):
		return icon.Colored(icon.Fail) + " " + err.Error(), true
	default:
		return "", false
	}
}
