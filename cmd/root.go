package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ropnep/trustedtrades/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tradies",
	Short: "Trade business discovery and license verification pipeline",
	Long:  "Discovers local trade businesses via Places search, dedups them into an accumulating store, cross-references the licensing register, and publishes a static site.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
