package cmd

import (
	"context"
	"fmt"

	"github.com/skillsphere/skillseed/internal/config"
	"github.com/skillsphere/skillseed/internal/database"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig reads and validates the configuration resolved by initConfig.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" && configErr != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, configErr)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func validConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// openDatabase resolves the connection URL and connects. Connection
// failures come back as *apperrors.ConnectError.
func openDatabase(ctx context.Context, cfg *config.Config) (database.Adapter, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}
	return database.Open(ctx, cfg.Database.Provider, dbURL)
}
