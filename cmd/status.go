package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/skillsphere/skillseed/internal/database"
	"github.com/skillsphere/skillseed/internal/seeder"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts of the marketplace tables",
	Long: `Show the number of rows in each marketplace table.

Running it before and after a seed shows that a rerun replaces the data
rather than adding to it.`,
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

		tables := seeder.TableNames()
		for _, table := range tables {
			exists, err := adapter.CheckTableExists(ctx, adapter.DB(), table)
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("table %s does not exist; apply the marketplace schema first", table)
			}
		}

		counts, err := database.GetAllTableRowCounts(ctx, adapter, adapter.DB(), tables)
		if err != nil {
			return err
		}

		color.Cyan("📊 Marketplace tables (%s)", adapter.Provider())
		fmt.Println(strings.Repeat("-", 42))
		var total int64
		for _, table := range tables {
			fmt.Printf("%-30s %10d\n", table, counts[table])
			total += counts[table]
		}
		fmt.Println(strings.Repeat("-", 42))
		fmt.Printf("%-30s %10d\n", "total", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
