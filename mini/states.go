package mini

import (
	"errors"
	"fmt"

	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/graphql"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/log"
	"github.com/dlive-cli/dlive/network"
	"github.com/dlive-cli/dlive/player"
	"github.com/samber/lo"
)

type state int

const (
	loadState state = iota + 1
	selectState
	playState
	quitState
)

func (m *mini) handleLoadState() error {
	erase := progress("Loading..")
	outcome, err := m.dispatcher.Dispatch(m.ctx, m.path)
	erase()

	if err != nil {
		if !recoverable(err) {
			return err
		}

		fail(err.Error())
		m.restore()
		m.setState(lo.Ternary(m.directory != nil, selectState, quitState))
		return nil
	}

	switch outcome := outcome.(type) {
	case *dispatch.Directory:
		m.directory = outcome
		m.pushed = false
		m.statesHistory.Clear()
		m.setState(selectState)
	case *dispatch.Playback:
		m.playback = outcome
		m.restore()
		m.setState(playState)
	}

	return nil
}

// restore forgets a path that did not produce a listing.
func (m *mini) restore() {
	if m.pushed && m.paths.Len() > 0 {
		m.path = m.paths.Pop()
	}
	m.pushed = false
}

// back returns to the previous listing, quitting when there is none.
func (m *mini) back() error {
	if m.paths.Len() == 0 {
		if m.directory == nil {
			m.setState(quitState)
			return nil
		}
		m.setState(selectState)
		return nil
	}

	m.path = m.paths.Pop()
	m.pushed = false
	m.setState(loadState)
	return nil
}

func (m *mini) handleSelectState() error {
	title(lo.Ternary(m.directory.Category != "", m.directory.Category, "DLive"))

	base := m.dispatcher.BaseURL()
	labels := lo.Map(m.directory.Rows, func(row listing.Row, _ int) string {
		return label(row, base)
	})

	binds := []*bind{quit}
	if m.paths.Len() > 0 {
		binds = []*bind{back, quit}
	}

	b, index, err := menu("Select entry", labels, binds...)
	if err != nil {
		return err
	}

	switch b {
	case back:
		return m.back()
	case quit:
		m.setState(quitState)
		return nil
	}

	row := m.directory.Rows[index]
	if isLocal(row, base) {
		m.open(row.Path, true)
		return nil
	}

	if row.Playable {
		m.playback = &dispatch.Playback{Row: row, URL: row.Path}
		m.newState(playState)
	}

	return nil
}

func (m *mini) handlePlayState() error {
	m.closePlayer()

	erase := progress(fmt.Sprintf("Starting player for %s..", m.playback.Row.Label))
	p := player.New()
	err := p.Play(player.Target{
		URL:      m.playback.URL,
		Title:    m.playback.Row.Label,
		Adaptive: m.playback.Adaptive,
	})
	erase()

	if err != nil {
		return err
	}

	m.player = p
	log.Infof("playing %s", m.playback.URL)

	for {
		title(fmt.Sprintf("Now playing %s", m.playback.Row.Label))
		b, _, err := menu("Player", nil, pause, back, quit)
		if err != nil {
			return err
		}

		switch b {
		case pause:
			if !m.player.IsRunning() {
				fail("Player has exited")
				continue
			}
			if err := m.player.TogglePause(); err != nil {
				fail(err.Error())
			}
		case back:
			m.closePlayer()
			m.playback = nil
			if m.directory == nil {
				m.setState(quitState)
				return nil
			}
			m.setState(selectState)
			return nil
		case quit:
			m.closePlayer()
			m.setState(quitState)
			return nil
		}
	}
}

// recoverable reports whether err leaves the previous listing usable.
func recoverable(err error) bool {
	var (
		offline   *dlive.OfflineError
		remote    *graphql.RemoteQueryError
		transport *network.TransportError
	)

	return errors.As(err, &offline) ||
		errors.Is(err, dlive.ErrNotFound) ||
		errors.Is(err, dlive.ErrUnavailable) ||
		errors.Is(err, dispatch.ErrNoQuery) ||
		errors.As(err, &remote) ||
		errors.As(err, &transport)
}
