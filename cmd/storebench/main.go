package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"localstash/internal/bench"
	"localstash/internal/config"
	"localstash/internal/exitcode"
	"localstash/internal/logging"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitcode.UserError
	}

	var (
		iterations = flag.Int("iterations", cfg.BenchIterations, "encode/decode operations per format")
		nameLen    = flag.Int("name-len", cfg.BenchNameBytes, "sample name length in bytes")
		formats    = flag.String("formats", strings.Join(cfg.BenchFormats, ","), "comma-separated formats to compare")
		dbPath     = flag.String("db", cfg.BenchDB, "SQLite DB path for run history (empty disables)")
		metricsOut = flag.String("metrics-out", cfg.BenchMetricsOut, "write Prometheus textfile metrics here")
		history    = flag.Int("history", 0, "print the N most recent recorded runs and exit")
		logLevel   = flag.String("log-level", cfg.LogLevel, "log level")
	)
	flag.Parse()

	if err := logging.Setup(*logLevel, cfg.LogFormat, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitcode.UserError
	}

	selected, err := bench.ParseFormats(*formats)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitcode.UserError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repo bench.Repository
	if *dbPath != "" {
		dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=journal_mode(WAL)", *dbPath)
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			log.Error().Err(err).Msg("open db")
			return exitcode.StorageError
		}
		defer db.Close()
		db.SetMaxOpenConns(1) // SQLite single writer

		if err := bench.EnsureSchema(db); err != nil {
			log.Error().Err(err).Msg("ensure schema")
			return exitcode.StorageError
		}
		repo = bench.NewSQLiteRepo(db)
	}

	if *history > 0 {
		if repo == nil {
			fmt.Fprintln(os.Stderr, "error: -history requires -db")
			return exitcode.UserError
		}
		runs, err := repo.ListRuns(ctx, *history)
		if err != nil {
			log.Error().Err(err).Msg("list runs")
			return exitcode.StorageError
		}
		for _, run := range runs {
			bench.WriteTable(os.Stdout, run)
		}
		return exitcode.Success
	}

	metrics := bench.NewMetrics(cfg.BenchMetricsNamespace)
	run, err := bench.Compare(ctx, selected, bench.SamplePerson(*nameLen), *iterations, metrics)
	if err != nil {
		log.Error().Err(err).Msg("compare formats")
		return exitcode.UserError
	}
	bench.WriteTable(os.Stdout, run)

	code := exitcode.Success
	if repo != nil {
		if _, err := repo.SaveRun(ctx, run); err != nil {
			log.Error().Err(err).Msg("save run")
			code = exitcode.StorageError
		} else {
			log.Info().Str("run_id", run.ID).Str("db", *dbPath).Msg("run recorded")
		}
	}
	if *metricsOut != "" {
		if err := metrics.WriteTextfile(*metricsOut); err != nil {
			log.Error().Err(err).Msg("write metrics")
			code = exitcode.StorageError
		}
	}
	if !run.OK() {
		log.Warn().Str("run_id", run.ID).Msg("a format lost data")
		code = exitcode.UserError
	}
	return code
}
