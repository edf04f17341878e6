package main

import (
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ropnep/trustedtrades/internal/config"
	"github.com/ropnep/trustedtrades/internal/discovery"
	"github.com/ropnep/trustedtrades/internal/tradie"
	"github.com/ropnep/trustedtrades/pkg/places"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover trade businesses via Places text search",
	Long:  "Search every configured location x category pair, filter and dedup the results, and merge new businesses into the store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("discover"); err != nil {
			return err
		}

		log := zap.L().With(zap.String("command", "discover"))

		if maxCalls, _ := cmd.Flags().GetInt("max-calls"); maxCalls > 0 {
			cfg.Discovery.MaxAPICalls = maxCalls
		}

		kw, err := config.LoadKeywords(cfg.Discovery.KeywordsFile)
		if err != nil {
			return err
		}

		store, err := tradie.Open(cfg.Store.Path)
		if err != nil {
			return err
		}

		client := places.NewClient(cfg.Places.Key,
			places.WithBaseURL(cfg.Places.BaseURL),
			places.WithLanguage(cfg.Places.Language),
		)

		runner := discovery.NewRunner(client, cfg, kw)
		result, err := runner.Run(ctx, store.All())
		if err != nil {
			return eris.Wrap(err, "discover")
		}

		store.Append(result.Found...)
		store.SetRun(uuid.NewString(), result.APICalls)
		if err := store.Save(); err != nil {
			return eris.Wrap(err, "discover: save store")
		}

		log.Info("discover complete",
			zap.Int("new", len(result.Found)),
			zap.Int("total", store.Len()),
			zap.Int("api_calls", result.APICalls),
			zap.Float64("cost_usd", result.CostUSD),
			zap.String("store", cfg.Store.Path),
		)

		return nil
	},
}

func init() {
	discoverCmd.Flags().Int("max-calls", 0, "override the per-run API call budget")
	rootCmd.AddCommand(discoverCmd)
}
