package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/arhyth/corebank"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfp := flag.String("config", "config.yml", "path to configuration file")
	dir := flag.String("sql", "testdata", "directory holding init_db.sql and seed templates")
	customers := flag.Int("customers", 10, "number of customers to seed with one Savings account each")
	opening := flag.String("opening", "1000.00", "opening balance of every seeded account")
	flag.Parse()

	cfgfl, err := os.Open(*cfp)
	if err != nil {
		logger.Fatal().Err(err).Msg("error opening config file")
	}
	cfg, err := corebank.LoadConfig(cfgfl)
	cfgfl.Close()
	if err != nil {
		logger.Fatal().Err(err).Msg("error decoding config file")
	}
	amt, err := decimal.NewFromString(*opening)
	if err != nil || amt.IsNegative() {
		logger.Fatal().Str("opening", *opening).Msg("invalid opening balance")
	}
	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		logger.Fatal().Err(err).Msg("error creating ID node")
	}

	seeded, err := run(cfg.Database.ConnectionString, node, *dir, *customers, amt)
	if err != nil {
		logger.Fatal().Err(err).Msg("error seeding database")
	}
	logger.Info().Int("accounts", seeded).Msg("database seeded")
}

// run returns instead of exiting so the helper's pool is always closed.
func run(connStr string, node *snowflake.Node, dir string, customers int, opening decimal.Decimal) (int, error) {
	lh, err := corebank.NewLocalHelper(connStr, node, dir)
	if err != nil {
		return 0, fmt.Errorf("starting local helper: %w", err)
	}
	defer lh.Close()
	if _, err = lh.InitDB(); err != nil {
		return 0, fmt.Errorf("initializing database: %w", err)
	}
	seeds, err := lh.SeedAccounts(customers, opening)
	if err != nil {
		return 0, fmt.Errorf("seeding accounts: %w", err)
	}
	return len(seeds), nil
}
