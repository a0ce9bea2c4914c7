package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/teatak/wordlike/extract"
)

func newExtractCmd(opts *options) *cobra.Command {
	var (
		outputPath string
		minCount   uint64
		fold       bool
	)
	cmd := &cobra.Command{
		Use:   "extract TEXT_FILE",
		Short: "Count the words of a text file and write them as a word,count corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open text: %w", err)
			}
			defer in.Close()

			counts, err := extract.Count(in, fold)
			if err != nil {
				return err
			}
			words := extract.Sorted(counts, minCount)

			var out io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			if err := extract.WriteCSV(out, words); err != nil {
				return err
			}
			opts.logger.Info("extracted corpus",
				slog.Int("unique", len(counts)),
				slog.Int("written", len(words)),
				slog.String("output", outputPath),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().Uint64Var(&minCount, "min-count", 1, "Drop words occurring fewer times")
	cmd.Flags().BoolVar(&fold, "fold", true, "Lowercase words")
	return cmd
}
