package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/skillsphere/skillseed/internal/config"
	"github.com/skillsphere/skillseed/internal/seeder"
	"github.com/skillsphere/skillseed/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the marketplace data with freshly generated rows",
	Long: `
Empty every marketplace table, reset its id counter and insert a new set of
generated rows, all inside one transaction. Any failure rolls the whole run
back and leaves the previous data in place.

Counts and the random seed come from skillseed.config.json and can be
overridden with flags:

  skillseed seed --projects 200 --seed 42

⚠️  WARNING: This replaces all existing rows in the marketplace tables!

Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applySeedFlags(cmd, &cfg.Seed)
		if err := validConfig(cfg); err != nil {
			return err
		}

		opts, err := seeder.OptionsFromConfig(cfg.Seed)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
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
		if !input.AskConfirmation("⚠️  This will replace all marketplace data. Continue?", force) {
			color.Yellow("Seeding cancelled")
			return nil
		}

		result, err := seeder.New(adapter, opts, seeder.ConsoleReporter{}, logger).Run(ctx)
		if err != nil {
			return err
		}

		color.Green("\n🎉 Database seeding completed successfully in %s", result.Duration.Round(time.Millisecond))
		for _, table := range seeder.TableNames() {
			fmt.Printf("   %-30s %d\n", table, result.Counts[table])
		}
		seeder.PrintCredentials(result.TestUsers)
		return nil
	},
}

// applySeedFlags overrides config values with the flags the user set.
func applySeedFlags(cmd *cobra.Command, s *config.Seed) {
	flags := cmd.Flags()

	ints := map[string]*int{
		"clients":       &s.Counts.Clients,
		"freelancers":   &s.Counts.Freelancers,
		"projects":      &s.Counts.Projects,
		"messages":      &s.Counts.Messages,
		"notifications": &s.Counts.Notifications,
		"events":        &s.Counts.AnalyticsEvents,
		"batch":         &s.BatchSize,
		"bcrypt-cost":   &s.BcryptCost,
	}
	for name, dst := range ints {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}

	if flags.Changed("seed") {
		s.RandomSeed, _ = flags.GetInt64("seed")
	}
}

func addSeedFlags(fs *pflag.FlagSet) {
	fs.Int64("seed", 0, "Random seed; the same seed reproduces the same data (0 uses the clock)")
	fs.Int("clients", 0, "Number of generated clients")
	fs.Int("freelancers", 0, "Number of generated freelancers")
	fs.Int("projects", 0, "Number of projects")
	fs.Int("messages", 0, "Number of messages")
	fs.Int("notifications", 0, "Number of notifications")
	fs.Int("events", 0, "Number of analytics events")
	fs.Int("batch", 0, "Rows per multi-row INSERT")
	fs.Int("bcrypt-cost", 0, "bcrypt cost used to hash passwords")
}

func init() {
	rootCmd.AddCommand(seedCmd)
	addSeedFlags(seedCmd.Flags())
}
