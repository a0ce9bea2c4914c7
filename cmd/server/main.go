package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/teatak/wordlike/config"
	"github.com/teatak/wordlike/dictionary"
	"github.com/teatak/wordlike/scorer"
	"github.com/teatak/wordlike/server"
)

func main() {
	configPath := flag.String("config", "wordlike.yaml", "Path to the YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides server.addr)")
	flag.Parse()

	if err := run(*configPath, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	logger, err := config.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load corpus and build tables
	format, err := dictionary.ParseFormat(cfg.Corpus.Format)
	if err != nil {
		return err
	}
	corpus := dictionary.NewCorpus()
	corpus.Logger = logger
	if err := corpus.Load(cfg.Corpus.Path, format); err != nil {
		return err
	}
	sc, err := scorer.FromCorpus(ctx, corpus.Entries, cfg.Scoring.Lengths, cfg.Scoring.Workers)
	if err != nil {
		return err
	}

	// 2. Serve until interrupted
	srv := server.New(sc, server.Options{
		Logger:       logger,
		MaxWords:     cfg.Server.MaxWords,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	return srv.Serve(ctx, cfg.Server.Addr)
}
