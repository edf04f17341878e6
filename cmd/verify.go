package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ropnep/trustedtrades/internal/config"
	"github.com/ropnep/trustedtrades/internal/license"
	"github.com/ropnep/trustedtrades/internal/tradie"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify stored businesses against the licensing register",
	Long:  "Cross-reference every stored business against the licensing registry snapshot and merge the outcome into its license fields.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("verify"); err != nil {
			return err
		}

		log := zap.L().With(zap.String("command", "verify"))

		kw, err := config.LoadKeywords(cfg.Discovery.KeywordsFile)
		if err != nil {
			return err
		}

		store, err := tradie.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		if store.Len() == 0 {
			return eris.Errorf("verify: store %s is empty, run discover first", cfg.Store.Path)
		}

		registry, err := license.LoadSnapshot(cfg.License.SnapshotPath, kw.LicenseTypes())
		if err != nil {
			return err
		}

		verifier := license.NewVerifier(registry, kw.LegalSuffixes,
			time.Duration(cfg.License.DelayMS)*time.Millisecond)
		summary, err := verifier.VerifyAll(ctx, store.All())
		if err != nil {
			return eris.Wrap(err, "verify")
		}

		if err := store.Save(); err != nil {
			return eris.Wrap(err, "verify: save store")
		}

		log.Info("verify complete",
			zap.Int("checked", summary.Checked),
			zap.Int("licensed", summary.Licensed),
			zap.Int("unlicensed", summary.Unlicensed),
		)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
