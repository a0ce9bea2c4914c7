package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/teatak/wordlike/config"
	"github.com/teatak/wordlike/dictionary"
	"github.com/teatak/wordlike/scorer"
)

// options holds the persistent flags and the configuration resolved from them.
type options struct {
	configPath string
	corpusPath string
	format     string
	lengths    []int
	workers    int
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "wordlike",
		Short: "Score words by how closely they follow the spelling patterns of a corpus",
		Long: `wordlike builds character n-gram frequency tables from a weighted word list
and ranks candidate strings by their length-normalized n-gram score.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "wordlike.yaml", "Path to the YAML config file")
	flags.StringVar(&opts.corpusPath, "corpus", "", "Corpus file (overrides corpus.path)")
	flags.StringVar(&opts.format, "format", "", "Corpus format: auto, csv or fields (overrides corpus.format)")
	flags.IntSliceVar(&opts.lengths, "lengths", nil, "Gram lengths combined into a word's key (overrides scoring.lengths)")
	flags.IntVar(&opts.workers, "workers", 0, "Goroutines used to build each table (overrides scoring.workers)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides log.level)")

	rootCmd.AddCommand(
		newGramsCmd(opts),
		newTopCmd(opts),
		newScoreCmd(opts),
		newRankCmd(opts),
		newExtractCmd(opts),
		newConfigCmd(opts),
		newServeCmd(opts),
	)
	return rootCmd
}

// resolve loads the config file and applies flag overrides.
func (o *options) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("corpus") {
		cfg.Corpus.Path = o.corpusPath
	}
	if flags.Changed("format") {
		cfg.Corpus.Format = o.format
	}
	if flags.Changed("lengths") {
		cfg.Scoring.Lengths = o.lengths
	}
	if flags.Changed("workers") {
		cfg.Scoring.Workers = o.workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = logger
	return nil
}

func (o *options) loadCorpus() (*dictionary.Corpus, error) {
	format, err := dictionary.ParseFormat(o.cfg.Corpus.Format)
	if err != nil {
		return nil, err
	}
	corpus := dictionary.NewCorpus()
	corpus.Logger = o.logger
	if err := corpus.Load(o.cfg.Corpus.Path, format); err != nil {
		return nil, err
	}
	return corpus, nil
}

func (o *options) loadScorer(ctx context.Context) (*scorer.Scorer, *dictionary.Corpus, error) {
	corpus, err := o.loadCorpus()
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	sc, err := scorer.FromCorpus(ctx, corpus.Entries, o.cfg.Scoring.Lengths, o.cfg.Scoring.Workers)
	if err != nil {
		return nil, nil, err
	}
	o.logger.Debug("built frequency tables",
		slog.Any("lengths", sc.Sizes()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return sc, corpus, nil
}
