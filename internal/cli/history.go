package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nekores/compressifypro/internal/common"
	"github.com/nekores/compressifypro/internal/config"
	"github.com/nekores/compressifypro/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent compression runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()

			store, err := history.Open(cfg.HistoryPath)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}

			records, err := store.Recent(limit)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no compression runs recorded")
				return nil
			}

			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  level=%-2d  %-10s  %s -> %s  (%.1f%%)\n",
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.Level,
					r.Strategy,
					common.FormatBytes(r.OriginalSize),
					common.FormatBytes(r.CompressedSize),
					r.CompressionRatio)
			}

			runs, saved, err := store.Totals()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d runs, %s saved in total\n", runs, common.FormatBytes(saved))

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")

	return cmd
}
