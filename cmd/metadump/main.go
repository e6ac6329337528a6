// Command metadump prints what the parser reads from metadata files.
//
// Useful for checking a hand-edited file before handing it to a tagger:
//
//	metadump tags.txt
//	metadump --check *.txt
//	metadump --json tags.txt
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/simonhull/tagfile"
)

type flags struct {
	check       bool
	asJSON      bool
	verbose     bool
	memoryLimit int
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:          "metadump <file>...",
		Short:        "Parse TAG=VALUE metadata files and print their entries",
		Version:      tagfile.GetVersion(),
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []tagfile.Option{tagfile.WithMemoryLimit(f.memoryLimit)}
			if f.verbose {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("create logger: %w", err)
				}
				defer logger.Sync() //nolint:errcheck // Best effort flush on exit
				opts = append(opts, tagfile.WithLogger(logger))
			}

			if f.check {
				return runCheck(cmd.Context(), out, args, opts)
			}
			return runDump(cmd.Context(), out, args, f.asJSON, opts)
		},
	}

	cmd.Flags().BoolVarP(&f.check, "check", "c", false, "only validate, report every failing file")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "print entries as JSON")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().IntVar(&f.memoryLimit, "memory-limit", 0, "maximum bytes per file (0 = no limit)")

	return cmd
}

func runCheck(ctx context.Context, out io.Writer, paths []string, opts []tagfile.Option) error {
	err := tagfile.CheckMany(ctx, paths, opts...)
	failed := multierr.Errors(err)
	for _, e := range failed {
		fmt.Fprintf(out, "FAIL %v\n", e)
	}
	fmt.Fprintf(out, "%d/%d files ok\n", len(paths)-len(failed), len(paths))
	if err != nil {
		return fmt.Errorf("%d file(s) failed validation", len(failed))
	}
	return nil
}

type jsonEntry struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

func runDump(ctx context.Context, out io.Writer, paths []string, asJSON bool, opts []tagfile.Option) error {
	lists, err := tagfile.ParseMany(ctx, paths, opts...)
	if err != nil {
		return err
	}

	for i, list := range lists {
		if asJSON {
			entries := make([]jsonEntry, 0, list.Len())
			for _, e := range list.All() {
				entries = append(entries, jsonEntry{Tag: e.Tag, Value: e.Value})
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(map[string]any{"path": paths[i], "entries": entries}); err != nil {
				return fmt.Errorf("encode %s: %w", paths[i], err)
			}
			continue
		}

		fmt.Fprintf(out, "%s (%d entries)\n", paths[i], list.Len())
		for n, e := range list.All() {
			lines := strings.Split(e.Value, "\n")
			fmt.Fprintf(out, "  [%d] %s = %q\n", n, e.Tag, lines[0])
			for _, line := range lines[1:] {
				fmt.Fprintf(out, "      %*s   %q\n", len(e.Tag), "", line)
			}
		}
	}
	return nil
}
