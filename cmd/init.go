package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/skillsphere/skillseed/internal/config"
	"github.com/skillsphere/skillseed/template"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
	yamlFlag       bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default skillseed configuration",
	Long: `Write skillseed.config.json (or skillseed.config.yaml with --yaml) with the
default counts, probabilities, distributions and test accounts, a reference
schema under db/ and a DATABASE_URL entry in .env.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.PostgreSQL
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		force, _ := cmd.Flags().GetBool("force")
		return initializeProject(dbType, yamlFlag, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize project for SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize project for PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize project for MySQL database")
	initCmd.Flags().BoolVar(&yamlFlag, "yaml", false, "Write the configuration as YAML")
}

func initializeProject(dbType template.DatabaseType, asYAML, force bool) error {
	tmpl := template.NewProjectTemplate(dbType)

	cfg := config.DefaultConfig()
	cfg.Database.Provider = tmpl.Provider()
	if dbType == template.MySQL {
		cfg.Database.Port = 3306
	}

	configPath, content, err := renderConfig(cfg, asYAML)
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	for _, dir := range tmpl.GetDirectoryStructure() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		configPath: content,
	}
	schemaPath := filepath.Join("db", "schema.sql")
	schemaExists := false
	if _, err := os.Stat(schemaPath); err == nil {
		schemaExists = true
	} else {
		files[schemaPath] = tmpl.GetSchema()
	}

	for filePath, content := range files {
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", filePath, err)
		}
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	color.Green("✅ Initialized skillseed for %s", dbType)
	fmt.Println()
	fmt.Println("📝 Files created:")
	fmt.Printf("   %s\n", configPath)
	if schemaExists {
		fmt.Printf("ℹ️  Skipped %s (already exists)\n", schemaPath)
	} else {
		fmt.Printf("   %s\n", schemaPath)
	}

	if os.Getenv(cfg.Database.URLEnv) != "" {
		fmt.Println()
		fmt.Printf("ℹ️  Using existing %s from environment\n", cfg.Database.URLEnv)
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   apply %s to your database\n", schemaPath)
	fmt.Printf("   skillseed seed       # Generate data\n")
	fmt.Printf("   skillseed verify     # Check the generated data\n")

	return nil
}

func renderConfig(cfg *config.Config, asYAML bool) (string, string, error) {
	if asYAML {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return "", "", fmt.Errorf("failed to encode config: %w", err)
		}
		return "skillseed.config.yaml", string(data), nil
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to encode config: %w", err)
	}
	return "skillseed.config.json", string(data) + "\n", nil
}

func handleEnvFile(defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}

	existingStr += "\n# Added by skillseed\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
