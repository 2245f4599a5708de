package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	configErr error
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════════════╗",
		"║   ███████╗██╗  ██╗██╗██╗     ██╗     ███████╗███████╗███████╗ ║",
		"║   ██╔════╝██║ ██╔╝██║██║     ██║     ██╔════╝██╔════╝██╔════╝ ║",
		"║   ███████╗█████╔╝ ██║██║     ██║     ███████╗█████╗  █████╗   ║",
		"║   ╚════██║██╔═██╗ ██║██║     ██║     ╚════██║██╔══╝  ██╔══╝   ║",
		"║   ███████║██║  ██╗██║███████╗███████╗███████║███████╗███████╗ ║",
		"║   ╚══════╝╚═╝  ╚═╝╚═╝╚══════╝╚══════╝╚══════╝╚══════╝╚══════╝ ║",
		"║                                                              ║",
		"║          🌱 SkillSphere marketplace data seeder 🌱            ║",
		"╚══════════════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                        ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "skillseed",
	Short: "Populate a SkillSphere database with consistent sample data",
	Long: `
skillseed fills the SkillSphere freelance marketplace schema with randomized
but referentially consistent data: users and profiles, skills, projects,
proposals, messages, notifications, ratings, analytics events, freelancer
preferences and application history.

Every run replaces the existing rows inside a single transaction.

Database Support:
- PostgreSQL
- MySQL
- SQLite`,
	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("skillseed version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, JSON or YAML (default is ./skillseed.config.json)")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "Write structured diagnostics to stderr")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	godotenv.Load(".env")
	godotenv.Load(".env.local")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("skillseed.config")
	}

	viper.SetEnvPrefix("SKILLSEED")
	viper.AutomaticEnv()

	// Without --config a missing file is fine; defaults apply.
	configErr = viper.ReadInConfig()
}
