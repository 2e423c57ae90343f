// Package cmd implements the command-line interface for dlive.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/dlive-cli/dlive/color"
	"github.com/dlive-cli/dlive/constant"
	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/key"
	"github.com/dlive-cli/dlive/log"
	"github.com/dlive-cli/dlive/quality"
	"github.com/dlive-cli/dlive/style"
	"github.com/dlive-cli/dlive/tui"
	"github.com/dlive-cli/dlive/util"
	"github.com/dlive-cli/dlive/version"
	"github.com/dlive-cli/dlive/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Remember channels whose stream is played")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnPlay, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringP("quality", "Q", "", "Live stream quality (auto, 1080p, 720p, 480p, 360p, ask, adaptive)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("quality", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return quality.Tiers(), cobra.ShellCompDirectiveNoFileComp
	}))

	rootCmd.PersistentFlags().Bool("nsfw", false, "Include streams flagged as adult content")
	lo.Must0(viper.BindPFlag(key.DliveShowNSFW, rootCmd.PersistentFlags().Lookup("nsfw")))

	rootCmd.Flags().BoolP("continue", "c", false, "Start from the recently watched channels")
	rootCmd.Flags().StringP("open", "o", "", "Start from a dispatcher path instead of the home folder")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return applyQuality(cmd)
	}

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// applyQuality stores the quality flag, given by number or name, as the configured tier.
func applyQuality(cmd *cobra.Command) error {
	flag := cmd.Flags().Lookup("quality")
	if flag == nil || !flag.Changed {
		return nil
	}

	tier, err := quality.ParseTier(flag.Value.String())
	if err != nil {
		return err
	}

	viper.Set(key.StreamQuality, int(tier))
	return nil
}

// startPath picks the first path of an interactive session.
func startPath(cmd *cobra.Command) string {
	if path := lo.Must(cmd.Flags().GetString("open")); path != "" {
		return path
	}

	if lo.Must(cmd.Flags().GetBool("continue")) {
		return actionPath("watched", nil)
	}

	return actionPath(dispatch.DefaultAction, nil)
}

// rootCmd defines the entry point for the dlive application.
var rootCmd = &cobra.Command{
	Use:   constant.Dlive,
	Short: "A terminal front-end for browsing and watching DLive",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal front-end for browsing and watching DLive"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		options := tui.Options{
			Start:   startPath(cmd),
			Connect: connect,
			Suggest: searches().Suggest,
		}
		handleErr(tui.Run(ctx, &options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
