// Package commands implements the messctl operator CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/mmynk/messbook/internal/storage"
	"github.com/mmynk/messbook/internal/storage/backend"
	"github.com/mmynk/messbook/pkg/logging"
)

// Settings are read from MESSCTL_* environment variables.
type Settings struct {
	Backend       string        `envconfig:"BACKEND" default:"sqlite"`
	DBPath        string        `envconfig:"DB_PATH" default:"./data/mess.db"`
	BadgerPath    string        `envconfig:"BADGER_PATH" default:"./data/badger"`
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	TokenDuration time.Duration `envconfig:"TOKEN_DURATION" default:"24h"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"warn"`

	AMQPURL        string `envconfig:"AMQP_URL"`
	AMQPExchange   string `envconfig:"AMQP_EXCHANGE" default:"mess"`
	AMQPRoutingKey string `envconfig:"AMQP_ROUTING_KEY" default:"ledger_events"`

	Colours bool `envconfig:"COLOURS" default:"true"`
}

var (
	settings Settings
	logger   *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "messctl",
	Short: "messctl - operator tools for messbook",
	Long: `messctl works directly against a messbook store. It computes settlement
reports, resolves month periods, issues development tokens, applies SQLite
migrations and tails ledger events.

Settings come from MESSCTL_* environment variables (MESSCTL_BACKEND,
MESSCTL_DB_PATH, MESSCTL_BADGER_PATH, MESSCTL_JWT_SECRET, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := envconfig.Process("messctl", &settings); err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		logger = logging.New(os.Stderr, settings.LogLevel)
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func openStore() (storage.Store, error) {
	return backend.Open(backend.Options{
		Kind:       settings.Backend,
		DBPath:     settings.DBPath,
		BadgerPath: settings.BadgerPath,
		Logger:     logger,
	})
}
