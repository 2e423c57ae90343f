package mini

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/quality"
	"github.com/dlive-cli/dlive/style"
	"github.com/dlive-cli/dlive/util"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

var errInterrupted = errors.New("interrupted")

// bind is a menu entry that is not a listing row.
type bind struct {
	name string
}

func (b *bind) String() string {
	return style.Fg(style.ChoiceColor)(b.name)
}

var (
	back  = &bind{name: "Back"}
	quit  = &bind{name: "Quit"}
	pause = &bind{name: "Pause/Resume"}
)

func title(text string) {
	fmt.Println(style.Title(text))
}

func fail(text string) {
	fmt.Println(icon.Colored(icon.Fail) + " " + style.Warning(text))
}

func progress(text string) (erase func()) {
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), style.Faint(text)))
}

// menu asks for one of labels or binds. The index is -1 when a bind was picked.
func menu(message string, labels []string, binds ...*bind) (*bind, int, error) {
	options := make([]string, 0, len(labels)+len(binds))
	options = append(options, labels...)
	for _, b := range binds {
		options = append(options, b.String())
	}

	var index int
	err := survey.AskOne(&survey.Select{
		Message:  message,
		Options:  options,
		PageSize: viper.GetInt(key.MiniPageSize),
	}, &index)
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, -1, errInterrupted
		}
		return nil, -1, err
	}

	if index >= len(labels) {
		return binds[index-len(labels)], -1, nil
	}

	return nil, index, nil
}

func isLocal(row listing.Row, base string) bool {
	return strings.HasPrefix(row.Path, base)
}

// label renders a row as a single menu line.
func label(row listing.Row, base string) string {
	var marker icon.Icon
	switch {
	case row.Playable && isLocal(row, base):
		marker = icon.Live
	case row.Playable:
		marker = icon.Video
	default:
		marker = icon.Folder
	}

	text := fmt.Sprintf("%s %s", icon.Colored(marker), row.Label)
	if row.Rating == dlive.LabelAgeRestricted {
		text += " " + style.Warning(row.Rating)
	}
	if row.Duration > 0 {
		text += " " + style.Faint(util.Clock(row.Duration))
	}

	return truncate.StringWithTail(text, uint(util.Max(truncateAt-4, 10)), "…")
}

// prompter asks for search texts on the terminal.
type prompter struct {
	suggest func(kind, partial string) mo.Option[string]
}

func (p *prompter) Prompt(kind, heading string) (string, bool) {
	input := &survey.Input{Message: heading + ":"}
	if p.suggest != nil {
		input.Suggest = func(partial string) []string {
			if suggestion, ok := p.suggest(kind, partial).Get(); ok {
				return []string{suggestion}
			}
			return nil
		}
	}

	var text string
	if err := survey.AskOne(input, &text); err != nil {
		return "", false
	}

	text = strings.TrimSpace(text)
	return text, text != ""
}

// chooser picks stream qualities on the terminal.
type chooser struct{}

func (chooser) Choose(heading string, options []string) int {
	var index int
	err := survey.AskOne(&survey.Select{
		Message:  heading,
		Options:  options,
		PageSize: viper.GetInt(key.MiniPageSize),
	}, &index)
	if err != nil {
		return quality.Cancelled
	}
	return index
}
