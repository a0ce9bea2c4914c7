package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teatak/wordlike/util"
)

func newRankCmd(opts *options) *cobra.Command {
	var (
		textPath string
		fold     bool
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "rank [WORD...]",
		Short: "Rank words by composite key, most wordlike first",
		Long: `Rank words given as arguments, or every distinct word of a text file
given with --text, by their length-normalized n-gram score.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			words := args
			if textPath != "" {
				data, err := os.ReadFile(textPath)
				if err != nil {
					return fmt.Errorf("read text: %w", err)
				}
				words = append(words, util.Words(string(data), fold)...)
			}
			if len(words) == 0 {
				return errors.New("no words to rank: pass words as arguments or use --text")
			}

			sc, _, err := opts.loadScorer(cmd.Context())
			if err != nil {
				return err
			}
			ranking := sc.Rank(words)
			if limit > 0 && limit < len(ranking) {
				ranking = ranking[:limit]
			}

			writer := bufio.NewWriter(cmd.OutOrStdout())
			for _, r := range ranking {
				fmt.Fprintf(writer, "%.4f\t%s\n", r.Key, r.Word)
			}
			return writer.Flush()
		},
	}
	cmd.Flags().StringVar(&textPath, "text", "", "Text file to take candidate words from")
	cmd.Flags().BoolVar(&fold, "fold", true, "Lowercase words taken from --text")
	cmd.Flags().IntVar(&limit, "limit", 0, "Print only the first N words (0 for all)")
	return cmd
}
