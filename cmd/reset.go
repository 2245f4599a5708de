package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/skillsphere/skillseed/internal/seeder"
	"github.com/skillsphere/skillseed/internal/utils"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Empty the marketplace tables",
	Long: `
Delete every row of the marketplace tables and reset their id counters
without inserting new data. Tables are emptied in reverse dependency order
inside one transaction.

⚠️  WARNING: This will permanently delete all data in the marketplace tables!

Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := validConfig(cfg); err != nil {
			return err
		}

		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		adapter, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		force, _ := cmd.Flags().GetBool("force")
		input := &utils.InputUtils{}
		if !input.AskConfirmation("⚠️  Are you sure you want to delete all marketplace data?", force) {
			color.Yellow("Reset cancelled")
			return nil
		}

		s := seeder.New(adapter, seeder.Options{}, seeder.ConsoleReporter{}, logger)
		n, err := s.Reset(ctx)
		if err != nil {
			return err
		}

		color.Green("✅ %d tables emptied", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
