package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/filesystem"
	"github.com/dlive-cli/dlive/inline"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/quality"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inlineCmd)

	inlineCmd.Flags().StringP("path", "p", "", "The dispatcher path to resolve, the home folder when omitted")
	inlineCmd.Flags().StringP("action", "a", "", "Resolve an action instead of a full path")
	inlineCmd.Flags().StringToStringP("param", "P", nil, "Parameters of the action, as key=value")
	inlineCmd.Flags().StringP("query", "q", "", "Search text used by search actions")
	inlineCmd.Flags().StringP("pick", "k", "", "Criteria for selecting a row whose path is followed")
	inlineCmd.Flags().StringP("rows", "r", "", "Criteria for selecting the rows written")
	inlineCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	inlineCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	inlineCmd.MarkFlagsMutuallyExclusive("path", "action")

	lo.Must0(inlineCmd.RegisterFlagCompletionFunc("action", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return dispatch.New(nil, nil).Actions(), cobra.ShellCompDirectiveNoFileComp
	}))
}

// inlineCmd executes the application in non-interactive, scriptable inline mode.
var inlineCmd = &cobra.Command{
	Use:   "inline",
	Short: "Execute the application in non-interactive, scriptable inline mode",
	Long: `Resolve one dispatcher path and write the resulting listing or stream URL.

Row pickers:
  first - first row in the listing
  last - last row in the listing
  exact:[label] - row with the given label
  [number] - select row by index (starting from 0)

Row selectors:
  first - first row in the listing
  last - last row in the listing
  all - all rows in the listing
  [number] - select row by index (starting from 0)
  [from]-[to] - select rows by range
  @[substring]@ - select rows by label substring

Plain output prints one "label<TAB>path" line per row, or the stream URL.`,
	Example: `  dlive inline --action streams --rows 0-4
  dlive inline --action search_users --query mario --pick first --json
  dlive inline --action stream --param username=mario --param quality=720p`,
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		picker := mo.None[inline.RowPicker]()
		if pick := lo.Must(cmd.Flags().GetString("pick")); pick != "" {
			fn, err := parsePicker(pick)
			handleErr(err)
			picker = mo.Some(fn)
		}

		rowsFilter := mo.None[inline.RowsFilter]()
		if rows := lo.Must(cmd.Flags().GetString("rows")); rows != "" {
			fn, err := inline.ParseRowsFilter(rows)
			handleErr(err)
			rowsFilter = mo.Some(fn)
		}

		ctx := context.Background()
		query := lo.Must(cmd.Flags().GetString("query"))
		dispatcher, err := connect(
			ctx,
			dispatch.WithPrompter(queryPrompter(query)),
			dispatch.WithChooser(quality.ChooserFunc(func(string, []string) int {
				return 0
			})),
		)
		handleErr(err)

		options := &inline.Options{
			Out:        writer,
			Dispatcher: dispatcher,
			Path:       inlinePath(cmd, query),
			Json:       lo.Must(cmd.Flags().GetBool("json")),
			Picker:     picker,
			RowsFilter: rowsFilter,
		}

		handleErr(inline.Run(ctx, options))
	},
}

// inlinePath builds the path to resolve from the path or action flags.
func inlinePath(cmd *cobra.Command, query string) string {
	if path := lo.Must(cmd.Flags().GetString("path")); path != "" {
		return path
	}

	action := lo.Must(cmd.Flags().GetString("action"))
	if action == "" {
		return ""
	}

	params := listing.Params(lo.Must(cmd.Flags().GetStringToString("param")))
	if query != "" {
		params = params.With("text", query)
	}

	return actionPath(action, params)
}

// parsePicker accepts "first", "last", "exact:label" or an index.
func parsePicker(description string) (inline.RowPicker, error) {
	if description == "first" || description == "last" {
		return inline.ParseRowPicker(description, "")
	}

	if label, ok := strings.CutPrefix(description, "exact:"); ok {
		return inline.ParseRowPicker("exact", label)
	}

	return inline.ParseRowPicker("index", description)
}

// queryPrompter answers search prompts with a fixed text.
type queryPrompter string

func (q queryPrompter) Prompt(string, string) (string, bool) {
	return string(q), q != ""
}

func init() {
	inlineCmd.AddCommand(inlineSchemaCmd)
}

// inlineSchemaCmd generates the JSON schema of structured inline mode output.
var inlineSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of structured inline mode output",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(json.NewEncoder(os.Stdout).Encode(inline.Schema()))
	},
}
