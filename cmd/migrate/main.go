// migrate applies the embedded database migrations.
//
// Usage: go run ./cmd/migrate [-log-level info] <up|down|step n|version|force n>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/Invoicing-api/internal/infrastructure/migration"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Invoicing-api/pkg/config"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: logLevel, Service: "migrate"})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	m, err := migration.New(pool, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create migrator")
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("close migrator")
		}
	}()

	log.Info().Str("command", command).Msg("migration CLI started")

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "step":
		n := intArg(log, args, "step count required. Usage: migrate step <n>")
		err = m.Steps(n)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			err = verr
			break
		}
		if version == 0 {
			log.Info().Msg("no migrations applied")
		} else {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current migration version")
		}
	case "force":
		v := intArg(log, args, "version required. Usage: migrate force <version>")
		err = m.Force(v)
	default:
		log.Error().Str("command", command).Msg("unknown command")
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migration failed")
	}
}

func intArg(log *logger.Logger, args []string, usage string) int {
	if len(args) < 2 {
		log.Fatal().Msg(usage)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatal().Str("value", args[1]).Msg("invalid number")
	}
	return n
}

func printUsage() {
	fmt.Println(`Invoicing database migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                Apply all pending migrations
  down              Roll back all migrations
  step <n>          Apply n migrations (negative rolls back)
  version           Show the current migration version
  force <version>   Force the migration version after a failed run

Flags:
  -log-level string Log level (default: info)`)
}
