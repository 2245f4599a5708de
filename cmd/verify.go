package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/skillsphere/skillseed/internal/verify"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the consistency rules of seeded data",
	Long: `Read the seeded tables and report every row that breaks a marketplace
rule:

- a project is open exactly when it has no freelancer
- an assigned project has one accepted proposal, from its freelancer
- an open project only has pending proposals
- a rated profile holds the rounded mean of the ratings it received
- freelancer preferences have 0 < min_budget < max_budget
- nobody messages themselves
- every configured test account can log in with its password

Nothing is modified. The command fails when any violation is found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := validConfig(cfg); err != nil {
			return err
		}

		ctx := context.Background()
		adapter, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		report, err := verify.Run(ctx, adapter, cfg.Seed.TestUsers)
		if err != nil {
			return err
		}

		for _, check := range []string{
			verify.CheckProjectStatus,
			verify.CheckProposals,
			verify.CheckRatings,
			verify.CheckPreferences,
			verify.CheckMessages,
			verify.CheckTestUsers,
		} {
			fmt.Printf("  %-16s %d checked\n", check, report.Checked[check])
		}

		if report.OK() {
			color.Green("✅ No violations found")
			return nil
		}

		for _, v := range report.Violations {
			color.Red("  ❌ %s", v)
		}
		return fmt.Errorf("%d violations found", len(report.Violations))
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
