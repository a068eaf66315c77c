package macrofit

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "macrofit",
	Short: "macrofit tracks personalized nutrition targets from your terminal",
	Long:  "macrofit is a local-first nutrition CLI: it derives calorie, macro, and micronutrient targets from your profile, logs meals against per-meal targets, scores daily consistency, and manages cheat meal quotas.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Optional .env next to the binary; env vars like MACROFIT_DB win
	// over the default config-dir location.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
