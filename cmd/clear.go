package cmd

import (
	"fmt"

	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// clearable are the locations clear offers a flag for.
var clearable = lo.Filter(locations, func(l *location, _ int) bool { return l.clear != nil })

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, l := range clearable {
		clearCmd.Flags().BoolP(l.flag, l.short, false, "clear "+l.name)
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear logs, cache, watched channels or search history",
	Run: func(cmd *cobra.Command, args []string) {
		selected := lo.Filter(clearable, func(l *location, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(l.flag))
		})

		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, l := range selected {
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), l.name))
			err := l.clear()
			erase()
			handleErr(err)
			fmt.Printf("%s %s cleared\n", icon.Colored(icon.Success), l.name)
		}
	},
}
