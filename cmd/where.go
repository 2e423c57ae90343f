package cmd

import (
	"os"

	"github.com/dlive-cli/dlive/color"
	"github.com/dlive-cli/dlive/filesystem"
	"github.com/dlive-cli/dlive/style"
	"github.com/dlive-cli/dlive/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is a file or directory owned by the CLI.
type location struct {
	name  string
	flag  string
	short string
	path  func() string
	// hidden locations are printed only when their flag is given.
	hidden bool
	// clear empties the location. Nil when clear does not offer it.
	clear func() error
}

func removeAll(path func() string) func() error {
	return func() error { return filesystem.API().RemoveAll(path()) }
}

var locations = []*location{
	{name: "Config", flag: "config", short: "c", path: where.Config},
	{name: "Logs", flag: "logs", short: "l", path: where.Logs, clear: removeAll(where.Logs)},
	{
		name: "Watched channels", flag: "history", short: "w", path: where.History,
		clear: func() error { return watched().Clear() },
	},
	{
		name: "Search history", flag: "searches", short: "s", path: where.Searches,
		clear: func() error { return searches().Clear("") },
	},
	{name: "Cache", flag: "cache", path: where.Cache, hidden: true, clear: removeAll(where.Cache)},
	{name: "Temp", flag: "temp", path: where.Temp, hidden: true},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.flag, l.short, false, "print the "+l.name+" path only")
		if l.hidden {
			lo.Must0(whereCmd.Flags().MarkHidden(l.flag))
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l *location, _ int) string {
		return l.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where dlive keeps its files",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.flag)) {
				cmd.Println(l.path())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		shown := lo.Reject(locations, func(l *location, _ int) bool { return l.hidden })
		for i, l := range shown {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(l.name), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.path())
		}
	},
}
