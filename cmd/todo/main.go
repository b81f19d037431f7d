package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"localstash/internal/cli"
	"localstash/internal/config"
	"localstash/internal/exitcode"
	"localstash/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitcode.UserError)
	}

	var (
		file     = flag.String("file", cfg.TodoFile, "todo queue file")
		logLevel = flag.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: todo [flags] <command> [args]\n\nflags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nrun 'todo help' for commands\n")
	}
	flag.Parse()

	if err := logging.Setup(*logLevel, cfg.LogFormat, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitcode.UserError)
	}
	log.Debug().Str("file", *file).Msg("todo starting")

	os.Exit(cli.NewDispatcher(*file).Run(flag.Args(), os.Stdout, os.Stderr))
}
