package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/dlive-cli/dlive/mini"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)

	miniCmd.Flags().BoolP("continue", "c", false, "Start from the recently watched channels")
	miniCmd.Flags().StringP("open", "o", "", "Start from a dispatcher path instead of the home folder")
}

// miniCmd launches the application in a lightweight, prompt based interface.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Launch the application in a lightweight, prompt based interface",
	Long:  `Browse DLive with plain terminal prompts instead of the full screen interface.`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		options := mini.Options{
			Start:   startPath(cmd),
			Connect: connect,
			Suggest: searches().Suggest,
		}
		handleErr(mini.Run(ctx, &options))
	},
}
