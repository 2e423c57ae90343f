package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dlive-cli/dlive/color"
	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/icon"
	"github.com/dlive-cli/dlive/style"
	"github.com/dlive-cli/dlive/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

// historyCmd manages the watched channels and search history.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the watched channels and search history",
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON array")
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the recently watched channels",
	Run: func(cmd *cobra.Command, args []string) {
		channels, err := watched().Recent()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(os.Stdout).Encode(channels))
			return
		}

		if len(channels) == 0 {
			fmt.Println(style.Faint("No channels watched yet"))
			return
		}

		for _, channel := range channels {
			fmt.Printf(
				"%s %s %s\n",
				style.Fg(color.Purple)(channel.String()),
				style.Faint(channel.Username),
				style.Faint(fmt.Sprintf("%s, %s", util.Quantify(channel.Times, "time", "times"), channel.WatchedAt.Format(time.DateTime))),
			)
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove [username]",
	Short: "Forget a watched channel",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(watched().Remove(args[0]))
		fmt.Printf("%s %s removed\n", icon.Get(icon.Success), args[0])
	},
}

func init() {
	historyCmd.AddCommand(historySearchesCmd)
	historySearchesCmd.Flags().BoolP("clear", "c", false, "Forget the searches instead of listing them")
}

var historySearchesCmd = &cobra.Command{
	Use:       "searches [kind]",
	Short:     "List the recent searches of a kind (users or categories)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{dlive.SearchKindUsers, dlive.SearchKindCategories},
	Run: func(cmd *cobra.Command, args []string) {
		kind := args[0]

		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(searches().Clear(kind))
			fmt.Printf("%s %s searches cleared\n", icon.Get(icon.Success), util.Capitalize(kind))
			return
		}

		texts, err := searches().Recent(kind)
		handleErr(err)
		for _, text := range texts {
			fmt.Println(text)
		}
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every watched channel",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(watched().Clear())
		fmt.Printf("%s Watched channels cleared\n", icon.Get(icon.Success))
	},
}
