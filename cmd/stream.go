package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/open"
	"github.com/dlive-cli/dlive/player"
	"github.com/dlive-cli/dlive/quality"
	"github.com/dlive-cli/dlive/style"
	"github.com/dlive-cli/dlive/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(streamCmd)

	streamCmd.Flags().BoolP("print", "p", false, "Print the stream URL instead of playing it")
	streamCmd.Flags().BoolP("json", "j", false, "Print the resolved playback as JSON")
	streamCmd.Flags().BoolP("browser", "b", false, "Open the channel page in the browser")

	streamCmd.MarkFlagsMutuallyExclusive("print", "json", "browser")
}

// streamCmd plays the live stream of a channel.
var streamCmd = &cobra.Command{
	Use:     "stream [username]",
	Short:   "Play the live stream of a channel",
	Long:    `Resolve the live stream of a channel at the configured quality and play it, print it or open its page.`,
	Args:    cobra.ExactArgs(1),
	Example: "  dlive stream mario --quality 720p",
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]

		if lo.Must(cmd.Flags().GetBool("browser")) {
			handleErr(open.Channel(username))
			return
		}

		printOnly := lo.Must(cmd.Flags().GetBool("print"))
		asJson := lo.Must(cmd.Flags().GetBool("json"))
		if !printOnly && !asJson {
			CheckDependencies()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		erase := util.PrintErasable(fmt.Sprintf("%s Resolving %s...", icon.Get(icon.Progress), username))
		dispatcher, err := connect(ctx, dispatch.WithChooser(quality.ChooserFunc(askQuality)))
		if err != nil {
			erase()
			handleErr(err)
		}

		outcome, err := dispatcher.Dispatch(ctx, actionPath("stream", listing.Params{"username": username}))
		erase()
		handleErr(err)

		playback, ok := outcome.(*dispatch.Playback)
		if !ok {
			handleErr(errors.New("no stream was resolved"))
		}

		switch {
		case asJson:
			handleErr(json.NewEncoder(os.Stdout).Encode(playback))
		case printOnly:
			fmt.Println(playback.URL)
		default:
			handleErr(playStream(ctx, playback))
		}
	},
}

// playStream plays playback and waits for the player or an interrupt.
func playStream(ctx context.Context, playback *dispatch.Playback) error {
	p := player.New()
	err := p.Play(player.Target{
		URL:      playback.URL,
		Title:    playback.Row.Label,
		Adaptive: playback.Adaptive,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s Playing %s\n", icon.Get(icon.Play), style.Bold(playback.Row.Label))

	select {
	case <-p.Wait():
	case <-ctx.Done():
		return p.Close()
	}

	return nil
}

// askQuality lets the user pick a rendition on the terminal.
func askQuality(heading string, options []string) int {
	var index int
	if err := survey.AskOne(&survey.Select{Message: heading, Options: options}, &index); err != nil {
		return quality.Cancelled
	}
	return index
}
