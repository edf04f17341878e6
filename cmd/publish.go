package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ropnep/trustedtrades/internal/config"
	"github.com/ropnep/trustedtrades/internal/publish"
	"github.com/ropnep/trustedtrades/internal/tradie"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render the static site from the store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "publish"))

		kw, err := config.LoadKeywords(cfg.Discovery.KeywordsFile)
		if err != nil {
			return err
		}

		store, err := tradie.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		if store.Len() == 0 {
			return eris.Errorf("publish: store %s is empty, run discover first", cfg.Store.Path)
		}

		if outDir, _ := cmd.Flags().GetString("out"); outDir != "" {
			cfg.Publish.OutputDir = outDir
		}

		pub, err := publish.New(cfg.Publish.OutputDir, cfg.Region, kw)
		if err != nil {
			return err
		}
		if err := pub.Publish(store.Snapshot()); err != nil {
			return eris.Wrap(err, "publish")
		}

		log.Info("publish complete",
			zap.Int("tradies", store.Len()),
			zap.String("output", cfg.Publish.OutputDir),
		)

		return nil
	},
}

func init() {
	publishCmd.Flags().String("out", "", "override the output directory")
	rootCmd.AddCommand(publishCmd)
}
