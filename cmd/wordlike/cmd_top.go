package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/teatak/wordlike/frequency"
)

func newTopCmd(opts *options) *cobra.Command {
	var (
		n int
		k int
	)
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Build the frequency table for one gram length and print its heaviest grams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("--size must be at least 1, got %d", n)
			}
			corpus, err := opts.loadCorpus()
			if err != nil {
				return err
			}
			table, err := frequency.BuildParallel(cmd.Context(), corpus.Entries, n, opts.cfg.Scoring.Workers)
			if err != nil {
				return err
			}
			opts.logger.Info("built frequency table",
				slog.Int("n", n),
				slog.Int("grams", table.Len()),
				slog.Uint64("total", table.Total()),
			)
			return table.WriteTop(cmd.OutOrStdout(), k)
		},
	}
	cmd.Flags().IntVarP(&n, "size", "n", 2, "Gram length")
	cmd.Flags().IntVarP(&k, "limit", "k", 10, "Number of grams to print (0 for all)")
	return cmd
}
