package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/order-fulfillment/internal/fulfillment/runlog"
	"github.com/jcmexdev/order-fulfillment/internal/fulfillment/runlog/sqlite"
)

// newStatusCmd reads the run log and reports how far an order got in its
// most recent run.
func newStatusCmd() *cobra.Command {
	var runLogPath string

	cmd := &cobra.Command{
		Use:   "status <order-id>",
		Short: "Show how far an order got in its last fulfillment run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := sqlite.Open(runLogPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			entry, err := repo.Latest(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printEntry(cmd, entry)
			return nil
		},
	}

	cmd.Flags().StringVar(&runLogPath, "run-log", envOr("RUN_LOG_PATH", "fulfillment.db"),
		"path of the sqlite run log")

	return cmd
}

func printEntry(cmd *cobra.Command, entry *runlog.Entry) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Order %s: %s\n", entry.OrderID, entry.Status)
	if entry.Stage != "" {
		fmt.Fprintf(out, "Last stage: %s\n", entry.Stage)
	}
	if entry.TrackingNumber != "" {
		fmt.Fprintf(out, "Tracking number: %s\n", entry.TrackingNumber)
	}
	if entry.ErrorMessage != "" {
		fmt.Fprintf(out, "Error: %s\n", entry.ErrorMessage)
	}
	fmt.Fprintf(out, "Updated: %s\n", entry.UpdatedAt.Format(time.RFC3339))
	if entry.TraceID != "" {
		fmt.Fprintf(out, "Trace: %s\n", entry.TraceID)
	}
}
