package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"

	"github.com/protomem/parking-tracker/internal/database"
	"github.com/protomem/parking-tracker/internal/env"
	"github.com/protomem/parking-tracker/internal/parking"
	"github.com/protomem/parking-tracker/internal/version"
)

var _cfgFile = flag.String("cfg", "", "path to config file")

func init() {
	flag.Parse()
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

type config struct {
	httpHost string
	httpPort int
	db       struct {
		dsn         string
		automigrate bool
	}
	report struct {
		dir string
	}
	rates parking.RateTable
}

type application struct {
	config config
	db     *database.DB
	logger *slog.Logger
	wg     sync.WaitGroup

	registry *parking.Registry
	ledger   *parking.Ledger
	billing  *parking.Billing
	rollover *parking.Rollover
	reporter *parking.Reporter
}

func run(logger *slog.Logger) error {
	var cfg config

	if *_cfgFile != "" {
		err := env.Load(*_cfgFile)
		if err != nil {
			return err
		}
	}

	cfg.httpHost = env.GetString("HTTP_HOST", "localhost")
	cfg.httpPort = env.GetInt("HTTP_PORT", 8080)
	cfg.db.dsn = env.GetString("DB_DSN", "postgres:postgres@localhost:5432/postgres")
	cfg.db.automigrate = env.GetBool("DB_AUTOMIGRATE", true)
	cfg.report.dir = env.GetString("REPORT_DIR", "./reports")

	defaultRates := parking.DefaultRates()
	cfg.rates = parking.RateTable{
		Resident: env.GetFloat("RATE_RESIDENT", defaultRates.Resident),
		Official: env.GetFloat("RATE_OFFICIAL", defaultRates.Official),
		Standard: env.GetFloat("RATE_STANDARD", defaultRates.Standard),
	}

	showVersion := flag.Bool("version", false, "display version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	db, err := database.New(cfg.db.dsn, cfg.db.automigrate)
	if err != nil {
		return err
	}
	defer db.Close()

	vehicles := database.NewVehicleDAO(logger, db)
	sessions := database.NewSessionDAO(logger, db)

	billing := parking.NewBilling(cfg.rates, vehicles, sessions)

	app := &application{
		config: cfg,
		db:     db,
		logger: logger,

		registry: parking.NewRegistry(logger, vehicles),
		ledger:   parking.NewLedger(logger, vehicles, sessions),
		billing:  billing,
		rollover: parking.NewRollover(logger, sessions),
		reporter: parking.NewReporter(logger, cfg.report.dir, sessions, billing),
	}

	return app.serveHTTP()
}
