// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dlive-cli/dlive/dispatch"
	"github.com/dlive-cli/dlive/dlive"
	"github.com/dlive-cli/dlive/listing"
	"github.com/dlive-cli/dlive/log"
)

// ErrNothingPicked is returned when the picker matches no row.
var ErrNothingPicked = errors.New("no row matched the picker")

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	path := options.Path
	if path == "" {
		path = listing.BuildURL(options.Dispatcher.BaseURL(), listing.Params{"action": dispatch.DefaultAction})
	}

	// Step 1: Resolve the requested path.
	outcome, err := options.Dispatcher.Dispatch(ctx, path)
	if err != nil {
		return err
	}

	// Step 2: Follow the picked row once when a picker is defined.
	if picker, ok := options.Picker.Get(); ok {
		directory, isDirectory := outcome.(*dispatch.Directory)
		if !isDirectory {
			return fmt.Errorf("%s is not a listing", path)
		}

		row, ok := picker(directory.Rows)
		if !ok {
			return ErrNothingPicked
		}

		log.Info("following " + row.Label)
		path = row.Path
		if strings.HasPrefix(row.Path, options.Dispatcher.BaseURL()) {
			outcome, err = options.Dispatcher.Dispatch(ctx, row.Path)
			if err != nil {
				return err
			}
		} else {
			outcome = &dispatch.Playback{Row: row, URL: row.Path}
		}
	}

	output := &Output{Path: path}
	switch outcome := outcome.(type) {
	case *dispatch.Directory:
		rows := outcome.Rows
		if filter, ok := options.RowsFilter.Get(); ok {
			if rows, err = filter(rows); err != nil {
				return err
			}
		}

		output.Rows = rows
		output.Category = outcome.Category
		output.Content = outcome.Content
	case *dispatch.Playback:
		output.Playback = outcome
	}

	// Step 3: Write the result.
	if options.Json {
		return writeJson(options.Out, output)
	}

	return writePlain(options.Out, output)
}

// writePlain prints the playback URL, or one "label<TAB>path" line per row.
func writePlain(out io.Writer, output *Output) error {
	if output.Playback != nil {
		_, err := fmt.Fprintln(out, output.Playback.URL)
		return err
	}

	for _, row := range output.Rows {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", row.Label, row.Path); err != nil {
			return err
		}
	}

	return nil
}

func writeJson(out io.Writer, output *Output) error {
	data, err := asJson(output)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func isContinuation(row listing.Row) bool {
	return row.Label == dlive.LabelMore
}
