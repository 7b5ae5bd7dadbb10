// Package cli implements the pugorugh commands: serve, seed, migrate and
// version. Every command reads its configuration from the environment,
// optionally primed from a .env file.
package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/config"
	"github.com/tbourn/pugorugh-backend/internal/repo"
	"github.com/tbourn/pugorugh-backend/internal/sysutil"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

var (
	envFile string
	cfg     config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "pugorugh",
	Short:         "Dog matching API",
	Long:          "Pug or Ugh: browse adoptable dogs, rate them and keep a per-user preference.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadEnvFile(envFile); err != nil {
			return err
		}
		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c
		sysutil.SetupLogger(cmd.ErrOrStderr(), sysutil.LogOptions{
			Level:   cfg.LogLevel,
			Pretty:  cfg.LogPretty,
			Service: cfg.OTEL.ServiceName,
			Version: Version,
		})
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment (empty to skip)")
}

// Execute runs the root command and logs a failure.
func Execute() error {
	err := RootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
	}
	return err
}

// loadEnvFile primes the environment from path. A missing file is fine;
// variables already set win over the file.
func loadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// openDB connects to the configured store, enabling query tracing when
// OpenTelemetry is on.
func openDB(c config.Config) (*gorm.DB, error) {
	db, err := repo.Open(c.DBDriver, c.DBTarget())
	if err != nil {
		return nil, err
	}
	if c.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			closeDB(db)
			return nil, err
		}
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}
}
