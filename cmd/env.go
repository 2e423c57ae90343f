package cmd

import (
	"os"

	"github.com/dlive-cli/dlive/auth"
	"github.com/dlive-cli/dlive/config"
	"github.com/dlive-cli/dlive/style"
	"github.com/dlive-cli/dlive/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "only show variables that are not set")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

type variable struct {
	name  string
	value string
}

// environment lists every variable the CLI reads, sorted by name.
// The token value is masked.
func environment(lookup func(string) string) []variable {
	names := lo.Map(config.EnvExposed, func(name string, _ int) string {
		field := config.Default[name]
		return field.Env()
	})
	names = append(names, where.EnvConfigPath, auth.EnvToken)
	slices.Sort(names)

	return lo.Map(lo.Uniq(names), func(name string, _ int) variable {
		value := lookup(name)
		if name == auth.EnvToken && value != "" {
			value = mask(value)
		}
		return variable{name: name, value: value}
	})
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables dlive reads",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, v := range environment(os.Getenv) {
			set := v.value != ""
			if (setOnly && !set) || (unsetOnly && set) {
				continue
			}

			value := style.Faint("unset")
			if set {
				value = style.Fg(style.AccentColor)(v.value)
			}
			cmd.Println(style.Bold(v.name) + "=" + value)
		}
	},
}
