package tui

import (
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/internal/ui"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/open"
	"github.com/dlive-cli/dlive/quality"
	"github.com/samber/mo"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := b.notifier.Update(msg); ok {
		return b, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case promptRequest:
		return b, b.askPrompt(msg)
	case chooseRequest:
		return b, b.askChoice(msg)
	case playerExitedMsg:
		if msg.player == b.player {
			b.player = nil
			b.playing = nil
			if b.state == playingState {
				if b.statesHistory.Len() == 0 {
					return b, tea.Quit
				}
				b.previousState()
			}
		}
		return b, nil
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case browseState:
		return b.updateBrowse(msg)
	case promptState:
		return b.updatePrompt(msg)
	case chooseState:
		return b.updateChoose(msg)
	case playingState:
		return b.updatePlaying(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case connectedMsg:
		b.dispatcher = msg.dispatcher
		return b, b.open(b.options.Start, false)
	case dispatchedMsg:
		switch outcome := msg.outcome.(type) {
		case *dispatch.Directory:
			b.stopLoading()
			cmd = b.showDirectory(msg.path, outcome, msg.push)
			b.statesHistory.Clear()
			b.setState(browseState)
			return b, cmd
		case *dispatch.Playback:
			return b, b.play(outcome)
		}
	case playerStartedMsg:
		b.stopLoading()
		b.player = msg.player
		b.playing = msg.playback
		b.statesHistory.Clear()
		if b.current != nil {
			b.statesHistory.Push(browseState)
		}
		b.setState(playingState)
		return b, waitForPlayerExit(msg.player)
	case failedMsg:
		b.stopLoading()
		if text, ok := notification(msg.err); ok && b.current != nil {
			b.statesHistory.Clear()
			b.setState(browseState)
			return b, ui.Notify(text)
		}
		b.raiseError(msg.err)
		return b, nil
	}

	b.spinnerC, cmd = b.spinnerC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) selected() (*listItem, bool) {
	item, ok := b.browseC.SelectedItem().(*listItem)
	return item, ok
}

func (b *statefulBubble) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && b.browseC.FilterState() != list.Filtering {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.selected()
			if !ok {
				break
			}

			if item.local {
				return b, b.open(item.row.Path, true)
			}

			if item.row.Playable {
				return b, b.play(&dispatch.Playback{Row: item.row, URL: item.row.Path})
			}
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.browseC.FilterState() != list.Unfiltered {
				break
			}

			if b.pages.Len() > 0 {
				return b, b.showPage(b.pages.Pop())
			}
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.reload):
			if b.current != nil {
				return b, b.open(b.current.path, false)
			}
		case bubblesKey.Matches(msg, b.keymap.goToUser):
			b.goingToUser = true
			b.prompt = mo.None[promptRequest]()
			b.newState(promptState)
			return b, b.resetInput("Channel name")
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if item, ok := b.selected(); ok && item.username() != "" {
				if err := open.Channel(item.username()); err != nil {
					return b, ui.Notify(icon.Get(icon.Fail) + " " + err.Error())
				}
			}
			return b, nil
		}
	}

	b.browseC, cmd = b.browseC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) resetInput(placeholder string) tea.Cmd {
	b.inputC.SetValue("")
	b.inputC.Placeholder = placeholder
	b.searchSuggestion = mo.None[string]()
	b.inputC.Focus()
	return textinput.Blink
}

// askPrompt shows the search input for a dispatch waiting on the user.
func (b *statefulBubble) askPrompt(request promptRequest) tea.Cmd {
	b.prompt = mo.Some(request)
	b.goingToUser = false
	b.newState(promptState)
	return b.resetInput(request.heading)
}

// answerPrompt replies to the waiting dispatch and resumes loading.
func (b *statefulBubble) answerPrompt(text string, ok bool) tea.Cmd {
	if request, present := b.prompt.Get(); present {
		request.reply <- promptReply{text: text, ok: ok}
	}

	b.prompt = mo.None[promptRequest]()
	b.inputC.Blur()
	b.setState(loadingState)
	return tea.Batch(b.startLoading(), b.host.waitForRequest())
}

func (b *statefulBubble) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		value := strings.TrimSpace(b.inputC.Value())

		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && value != "":
			if b.goingToUser {
				b.goingToUser = false
				b.inputC.Blur()
				path := listing.BuildURL(b.dispatcher.BaseURL(), listing.Params{"action": "user", "username": value})
				return b, b.open(path, true)
			}
			return b, b.answerPrompt(value, true)
		case bubblesKey.Matches(msg, b.keymap.acceptSearchSuggestion) && b.searchSuggestion.IsPresent():
			b.inputC.SetValue(b.searchSuggestion.MustGet())
			b.searchSuggestion = mo.None[string]()
			b.inputC.CursorEnd()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.goingToUser {
				b.goingToUser = false
				b.inputC.Blur()
				b.previousState()
				return b, nil
			}
			return b, b.answerPrompt("", false)
		}
	}

	b.inputC, cmd = b.inputC.Update(msg)
	b.suggest()
	return b, cmd
}

func (b *statefulBubble) suggest() {
	b.searchSuggestion = mo.None[string]()

	request, ok := b.prompt.Get()
	if !ok || b.options.Suggest == nil || b.inputC.Value() == "" {
		return
	}

	if suggestion, ok := b.options.Suggest(request.kind, b.inputC.Value()).Get(); ok && suggestion != b.inputC.Value() {
		b.searchSuggestion = mo.Some(suggestion)
	}
}

// askChoice lists the options of a dispatch waiting on the user.
func (b *statefulBubble) askChoice(request chooseRequest) tea.Cmd {
	b.choice = mo.Some(request)

	items := make([]list.Item, len(request.options))
	for i, option := range request.options {
		items[i] = &choiceItem{index: i, label: option}
	}

	b.choicesC.Title = request.heading
	b.choicesC.ResetSelected()
	b.newState(chooseState)
	return b.choicesC.SetItems(items)
}

func (b *statefulBubble) answerChoice(index int) tea.Cmd {
	if request, ok := b.choice.Get(); ok {
		request.reply <- index
	}

	b.choice = mo.None[chooseRequest]()
	b.setState(loadingState)
	return tea.Batch(b.startLoading(), b.host.waitForRequest())
}

func (b *statefulBubble) updateChoose(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.play):
			if item, ok := b.choicesC.SelectedItem().(*choiceItem); ok {
				return b, b.answerChoice(item.index)
			}
		case bubblesKey.Matches(msg, b.keymap.back):
			return b, b.answerChoice(quality.Cancelled)
		}
	}

	b.choicesC, cmd = b.choicesC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.playPause):
			if b.player != nil {
				if err := b.player.TogglePause(); err != nil {
					return b, ui.Notify(icon.Get(icon.Fail) + " " + err.Error())
				}
			}
		case bubblesKey.Matches(msg, b.keymap.openURL):
			if b.playing != nil && b.playing.Username != "" {
				_ = open.Channel(b.playing.Username)
			}
		case bubblesKey.Matches(msg, b.keymap.back):
			b.closePlayer()
			b.playing = nil
			if b.statesHistory.Len() == 0 {
				return b, tea.Quit
			}
			b.previousState()
		}
	}

	return b, nil
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() == 0 {
				return b, tea.Quit
			}
			b.previousState()
		}
	}
	return b, nil
}
