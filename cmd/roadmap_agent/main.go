// Command roadmap_agent generates interview preparation roadmaps.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "roadmap_agent",
	Short: "Interview preparation roadmap generator",
	Long: `roadmap_agent researches a company's interview process, asks Gemini for a structured
preparation roadmap, and writes it as {company}_{role}_roadmap.json. When the model output
is unusable a standard roadmap is written instead.`,
	PersistentPreRunE: loadEnvFile,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "KEY=VALUE file loaded before configuration; variables already set win")
}

// loadEnvFile loads --env-file. The default .env is optional; a file named
// explicitly must exist.
func loadEnvFile(cmd *cobra.Command, _ []string) error {
	err := godotenv.Load(envFile)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("env-file") {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", envFile, err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
