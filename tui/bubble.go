package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/internal/ui"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/player"
	"github.com/dlive-cli/dlive/style"
	"github.com/dlive-cli/dlive/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// page is a listing the user can return to.
type page struct {
	path     string
	title    string
	category string
	items    []list.Item
	index    int
}

// statefulBubble encapsulates the application state and its component models.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	ctx        context.Context
	options    *Options
	dispatcher *dispatch.Dispatcher
	host       *host

	// components
	spinnerC spinner.Model
	inputC   textinput.Model
	browseC  list.Model
	choicesC list.Model
	helpC    help.Model

	rootTitle string
	current   *page
	pages     util.Stack[*page]

	prompt      mo.Option[promptRequest]
	goingToUser bool
	choice      mo.Option[chooseRequest]

	player  player.Player
	playing *dispatch.Playback

	progressStatus   string
	lastError        error
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	width, height int
}

// raiseError shows err in the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState moves to s, remembering the current state unless it is transient.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, promptState, chooseState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.browseC.SetSize(listWidth, listHeight)
	b.browseC.Help.Width = listWidth

	b.choicesC.SetSize(listWidth, listHeight)
	b.choicesC.Help.Width = listWidth

	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	return tea.Batch(b.spinnerC.Tick, b.browseC.StartSpinner())
}

func (b *statefulBubble) stopLoading() {
	b.loading = false
	b.browseC.StopSpinner()
}

func (b *statefulBubble) closePlayer() {
	if b.player != nil {
		_ = b.player.Close()
		b.player = nil
	}
}

func newBubble(ctx context.Context, options *Options) *statefulBubble {
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        newStatefulKeymap(),
		ctx:           ctx,
		options:       options,
		host:          newHost(ctx.Done()),
		notifier:      &ui.Model{},
	}

	makeList := func(title string, description bool, titleColor lipgloss.Color) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		listC.Styles.Title = lipgloss.NewStyle().Foreground(style.TitleColor).Background(titleColor).Padding(0, 1)
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.rootTitle = fmt.Sprintf("DLive (v%s)", constant.Version)
	bubble.browseC = makeList(bubble.rootTitle, true, style.AccentColor)
	bubble.browseC.SetStatusBarItemName("entry", "entries")

	bubble.choicesC = makeList("", false, style.ChoiceColor)
	bubble.choicesC.SetFilteringEnabled(false)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
