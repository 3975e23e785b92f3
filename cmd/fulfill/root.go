package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jcmexdev/order-fulfillment/internal/fulfillment"
	"github.com/jcmexdev/order-fulfillment/internal/fulfillment/runlog"
	"github.com/jcmexdev/order-fulfillment/internal/fulfillment/runlog/sqlite"
	"github.com/jcmexdev/order-fulfillment/internal/orderclient"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/httpx"
	"github.com/jcmexdev/order-fulfillment/internal/pkg/telemetry"
	"github.com/jcmexdev/order-fulfillment/internal/shippingclient"
)

type options struct {
	orderServiceAddr    string
	shippingServiceAddr string
	labelsDir           string
	count               int
	runLogPath          string
	tracing             bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "fulfill",
		Short: "Fulfill pending orders",
		Long: `Fulfill lists the pending orders, then for each selected order generates a
shipping label via the Shipping service, writes the label document to the
labels directory, and publishes the tracking number back to the Order
service. Orders are processed strictly one at a time, in listing order, and
the batch halts at the first failure.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.orderServiceAddr, "order-service", envOr("ORDER_SERVICE_ADDR", "http://localhost:9090"),
		"base URL of the Order service")
	flags.StringVar(&opts.shippingServiceAddr, "shipping-service", envOr("SHIPPING_SERVICE_ADDR", "http://localhost:9091"),
		"base URL of the Shipping service")
	flags.StringVar(&opts.labelsDir, "labels-dir", envOr("LABELS_DIR", "labels"),
		"directory where label documents are written")
	flags.IntVar(&opts.count, "count", -1,
		"number of pending orders to process; prompts when negative")
	flags.StringVar(&opts.runLogPath, "run-log", envOr("RUN_LOG_PATH", "fulfillment.db"),
		"path of the sqlite run log; empty disables it")
	flags.BoolVar(&opts.tracing, "tracing", false,
		"export OpenTelemetry traces to OTEL_EXPORTER_OTLP_ENDPOINT")

	cmd.AddCommand(newStatusCmd())

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	telemetry.InitLogger("fulfill")

	// One request id for the whole batch. The client transports stamp it on
	// every outgoing call, so the services' logs for a run share a single id.
	runID := uuid.NewString()
	ctx := httpx.ContextWithRequestID(cmd.Context(), runID)
	slog.Info("starting fulfillment run", "request_id", runID)

	if opts.tracing {
		shutdown, err := telemetry.SetupTracer(ctx, "fulfill")
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	store, err := fulfillment.NewDirLabelStore(opts.labelsDir)
	if err != nil {
		return err
	}

	var logRepo runlog.Repository
	if opts.runLogPath != "" {
		repo, err := sqlite.Open(opts.runLogPath)
		if err != nil {
			return err
		}
		defer repo.Close()
		logRepo = repo
	}

	pipe := fulfillment.New(
		orderclient.New(opts.orderServiceAddr),
		shippingclient.New(opts.shippingServiceAddr),
		store,
		logRepo,
	)

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Getting the pending orders...")
	pending, err := pipe.ListPending(ctx)
	if err != nil {
		return err
	}

	for _, summary := range pending {
		fmt.Fprintf(out, "Customer Name: %s - %s\n", summary.CustomerName, summary.OrderDate.Format("2006-01-02"))
	}
	fmt.Fprintf(out, "There are %d pending orders\n\n", len(pending))

	n := opts.count
	if n < 0 {
		n, err = promptCount(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
	}

	results, runErr := pipe.Run(ctx, pending, n)
	report(out, results, store)
	if runErr != nil {
		return runErr
	}

	fmt.Fprintf(out, "Processed %d of %d pending orders.\n", len(results), len(pending))
	return nil
}

// promptCount asks the operator how many of the pending orders to process.
func promptCount(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprint(out, "How many orders should we process? ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return 0, fmt.Errorf("read order count: %w", err)
	}

	line = strings.TrimSpace(line)
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", fulfillment.ErrInvalidOrderCount, line)
	}
	return n, nil
}

// report prints the terminal state each attempted order reached.
func report(out io.Writer, results []fulfillment.Result, store *fulfillment.DirLabelStore) {
	for _, res := range results {
		fmt.Fprintln(out, strings.Repeat("#", 70))
		fmt.Fprintf(out, "Order %s (%s)\n", res.OrderID, res.CustomerName)

		if res.Err != nil {
			var stageErr *fulfillment.StageError
			if errors.As(res.Err, &stageErr) {
				fmt.Fprintf(out, "FAILED at stage %s: %v\n", stageErr.Stage, stageErr.Err)
			} else {
				fmt.Fprintf(out, "FAILED: %v\n", res.Err)
			}
			continue
		}

		fmt.Fprintf(out, "Order Total: %s\n", res.TotalPrice.StringFixed(2))
		fmt.Fprintf(out, "Label written to %s\n", store.Path(res.TrackingNumber))
		fmt.Fprintf(out, "%s The new tracking number for this order is %s\n", res.Confirmation, res.TrackingNumber)
	}
	if len(results) > 0 {
		fmt.Fprintln(out, strings.Repeat("#", 70))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
