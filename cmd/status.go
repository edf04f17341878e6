package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ropnep/trustedtrades/internal/tradie"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store contents and verification stats",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := tradie.Open(cfg.Store.Path)
		if err != nil {
			return err
		}

		doc := store.Snapshot()
		fmt.Printf("Store: %s\n", cfg.Store.Path)
		if doc.TotalTradies == 0 {
			fmt.Println("No businesses recorded yet. Run `tradies discover` to populate the store.")
			return nil
		}

		fmt.Printf("Last updated: %s\n", doc.LastUpdated.Format("2006-01-02 15:04:05 MST"))
		if doc.RunID != "" {
			fmt.Printf("Last run:     %s (%d API calls)\n", doc.RunID, doc.APICallsUsed)
		}
		fmt.Printf("Total:        %d businesses\n\n", doc.TotalTradies)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tCOUNT")
		categories := make([]string, 0, len(doc.Breakdown))
		for cat := range doc.Breakdown {
			categories = append(categories, cat)
		}
		sort.Strings(categories)
		for _, cat := range categories {
			fmt.Fprintf(w, "%s\t%d\n", cat, doc.Breakdown[cat])
		}
		if err := w.Flush(); err != nil {
			return err
		}

		stats := doc.LicenseVerificationStats
		fmt.Printf("\nLicense verification: %d checked, %d licensed, %d unlicensed (%.0f%%)\n",
			stats.TotalChecked, stats.Licensed, stats.Unlicensed, stats.VerificationRate*100)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
