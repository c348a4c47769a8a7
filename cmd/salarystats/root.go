package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salarystats/internal/config"
	"github.com/fr4nk3nst1ner/salarystats/internal/logger"
	"github.com/fr4nk3nst1ner/salarystats/internal/models"
	"github.com/fr4nk3nst1ner/salarystats/internal/provider/headhunter"
	"github.com/fr4nk3nst1ner/salarystats/internal/provider/superjob"
	"github.com/fr4nk3nst1ner/salarystats/internal/stats"
	"github.com/fr4nk3nst1ner/salarystats/internal/ui"
)

const (
	sourceAll        = "all"
	sourceHeadHunter = "headhunter"
	sourceSuperJob   = "superjob"
)

type flags struct {
	configPath string
	envFile    string
	source     string
	proxy      string
	debug      bool
	silence    bool
	noProgress bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "salarystats",
		Short: "Average developer salaries per language on HeadHunter and SuperJob",
		Long: `salarystats counts vacancies for a fixed list of programming languages on
hh.ru and superjob.ru, converts published salary ranges into single rouble
figures and prints one table per provider.

The SuperJob API key is read from SJ_TOKEN (environment or .env file).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "optional YAML config file")
	fs.StringVar(&f.envFile, "env-file", "", "load environment from this file instead of .env.local/.env")
	fs.StringVar(&f.source, "source", sourceAll, "provider to query: all, headhunter or superjob")
	fs.StringVar(&f.proxy, "proxy", "", "proxy URL for all requests")
	fs.BoolVar(&f.debug, "debug", false, "log every request")
	fs.BoolVar(&f.silence, "silence", false, "do not print the banner")
	fs.BoolVar(&f.noProgress, "no-progress", false, "do not draw progress bars")
	return cmd
}

// applyFlags narrows the configuration to what the command line asked for
func applyFlags(cfg *config.Config, f flags) error {
	switch strings.ToLower(f.source) {
	case sourceAll:
	case sourceHeadHunter:
		cfg.SuperJob.Enabled = false
	case sourceSuperJob:
		cfg.HeadHunter.Enabled = false
	default:
		return fmt.Errorf("invalid source %q: must be one of %s, %s, %s", f.source, sourceAll, sourceHeadHunter, sourceSuperJob)
	}
	if f.proxy != "" {
		cfg.HTTP.Proxy = f.proxy
	}
	return nil
}

// loggedError marks an error that run has already logged
type loggedError struct{ err error }

func (e loggedError) Error() string { return e.err.Error() }
func (e loggedError) Unwrap() error { return e.err }

func run(ctx context.Context, f flags, stdout, stderr io.Writer) error {
	level := "info"
	if f.debug {
		level = "debug"
	}
	log, err := logger.New(logger.Config{Level: level})
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if err := report(ctx, f, log, stdout, stderr); err != nil {
		log.Error("salarystats failed", logger.Error(err))
		return loggedError{err}
	}
	return nil
}

func report(ctx context.Context, f flags, log logger.Logger, stdout, stderr io.Writer) error {
	cfg, err := config.Load(f.configPath, f.envFile)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, f); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ui.PrintBanner(stderr, f.silence)

	var opts []stats.Option
	opts = append(opts, stats.WithLogger(log))
	if !f.noProgress && !f.debug {
		opts = append(opts, stats.WithProgress(stderr))
	}

	tables, err := collect(ctx, cfg, log, opts)
	if err != nil {
		return err
	}
	return printTables(stdout, tables)
}

// collect queries every enabled provider in turn
func collect(ctx context.Context, cfg *config.Config, log logger.Logger, opts []stats.Option) ([]*models.StatisticsTable, error) {
	var tables []*models.StatisticsTable

	if cfg.HeadHunter.Enabled {
		hh := headhunter.New(cfg.HeadHunter, cfg.HTTP, log)
		table, err := stats.Collect[headhunter.Vacancy](ctx, hh, cfg.Languages, opts...)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	if cfg.SuperJob.Enabled {
		sj := superjob.New(cfg.SuperJob, cfg.HTTP, log)
		table, err := stats.Collect[superjob.Vacancy](ctx, sj, cfg.Languages, opts...)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// printTables writes the tables separated by a blank line
func printTables(w io.Writer, tables []*models.StatisticsTable) error {
	if !isTerminal(w) {
		ui.PlainTables()
	}
	for i, table := range tables {
		out, err := ui.RenderTable(table)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, out)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && isatty.IsTerminal(file.Fd())
}
