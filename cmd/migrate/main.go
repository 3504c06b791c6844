package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BruksfildServices01/virtual-queue/internal/config"
	dbpkg "github.com/BruksfildServices01/virtual-queue/internal/db"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
)

func main() {
	force := flag.Int("force", -1, "mark the schema as this version without running migrations")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [-force N] up|down\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	mg, err := dbpkg.NewMigrator(cfg.DBUrl)
	if err != nil {
		logging.Fatal().Err(err).Msg("open migrator")
	}
	defer mg.Close()

	if *force >= 0 {
		if err := mg.Force(*force); err != nil {
			logging.Fatal().Err(err).Int("version", *force).Msg("force failed")
		}
		logging.Info().Int("version", *force).Msg("schema version forced")
		return
	}

	switch flag.Arg(0) {
	case "", "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logging.Fatal().Err(err).Str("direction", flag.Arg(0)).Msg("migration failed")
	}
}
