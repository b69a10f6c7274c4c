package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fnolabs/crashtriage/internal/capability"
	"github.com/fnolabs/crashtriage/internal/model"
	"github.com/fnolabs/crashtriage/internal/pipeline"
	"github.com/fnolabs/crashtriage/internal/stats"
	"github.com/fnolabs/crashtriage/internal/status"
	"github.com/fnolabs/crashtriage/internal/store"
)

var (
	outJSON       string
	noBodyFlag    bool
	noNotify      bool
	provider      string
	providerModel string
	invokeTimeout time.Duration
	storeBackend  string
	storeDir      string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <event.json>",
	Short: "Process a single accident event into an incident report",
	Long: `Process reads one accident telemetry event from a JSON file and runs
the full claim pipeline:
- Tier 1: impact analysis, environment context and policy lookup in parallel
- Tier 2: nearby services and driver communications in parallel
- Compile the incident report with recommended actions and alerts
- Best-effort adjuster and customer notifications

Example:
  crashtriage process event.json
  crashtriage process event.json --json report.json
  crashtriage process event.json --provider openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	// Output flags
	processCmd.Flags().StringVar(&outJSON, "json", "", "output JSON report path (optional)")
	processCmd.Flags().BoolVar(&noBodyFlag, "no-body", false, "suppress plaintext report body on stdout")

	// Pipeline flags
	processCmd.Flags().BoolVar(&noNotify, "no-notify", false, "skip best-effort notifications")
	processCmd.Flags().DurationVar(&invokeTimeout, "timeout", 30*time.Second, "timeout per capability invocation")

	// Capability provider flags
	processCmd.Flags().StringVar(&provider, "provider", "openai", "capability provider")
	processCmd.Flags().StringVar(&providerModel, "model", "gpt-4o-mini", "dispatch model name")

	// Store flags
	processCmd.Flags().StringVar(&storeBackend, "store", "memory", "report store backend (memory, disk)")
	processCmd.Flags().StringVar(&storeDir, "store-dir", "./crashtriage-reports", "report directory for the disk backend")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ev, err := readEvent(args[0])
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	sink := status.NewBroadcastSink(64)
	defer sink.Close()
	if verbose {
		go echoStatusEvents(sink.Subscribe())
		go echoCustomerNotices(sink.SubscribeCustomers())
	}

	p, counters, err := newPipeline(cfg, sink)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := p.Process(ctx, ev)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	if !noBodyFlag && cfg.Output.RenderBody {
		fmt.Println(pipeline.RenderReportBody(report))
	}

	if outJSON != "" {
		if err := writeReportJSON(report, outJSON); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	if verbose {
		snap := counters.Snapshot()
		fmt.Fprintf(os.Stderr, "✓ Claim %s | sms=%d emails=%d\n", report.ClaimNumber, snap.SMSSent, snap.EmailsSent)
	}

	return nil
}

// buildConfig assembles configuration from defaults, flags and environment.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Capabilities.Provider = provider
	cfg.Capabilities.Model = providerModel
	cfg.Capabilities.InvokeTimeout = invokeTimeout
	cfg.Pipeline.Notifications = !noNotify
	cfg.Store.Backend = storeBackend
	cfg.Store.Dir = storeDir
	cfg.Output.Verbose = verbose

	if cfg.Capabilities.APIKey == "" {
		cfg.Capabilities.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Capabilities.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if baseURL := os.Getenv("CRASHTRIAGE_BASE_URL"); baseURL != "" {
		cfg.Capabilities.BaseURL = baseURL
	}

	return cfg, nil
}

// newPipeline wires the invoker, store and counters into a pipeline.
func newPipeline(cfg *model.Config, sink status.Sink) (*pipeline.Pipeline, *stats.Counters, error) {
	invoker, err := capability.NewInvoker(capability.ConfigFromModel(cfg.Capabilities))
	if err != nil {
		return nil, nil, fmt.Errorf("create invoker: %w", err)
	}

	reports, err := store.New(cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	counters := stats.NewCounters()
	return pipeline.New(invoker, sink, counters, reports, cfg), counters, nil
}

// readEvent loads one accident event from a JSON file.
func readEvent(path string) (*model.AccidentEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}

	var ev model.AccidentEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &ev, nil
}

// writeReportJSON writes the report as indented JSON.
func writeReportJSON(report *model.IncidentReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// echoStatusEvents prints capability lifecycle events in verbose mode.
func echoStatusEvents(events <-chan status.Event) {
	for ev := range events {
		fmt.Fprintf(os.Stderr, "  [%s] %s %s\n", ev.Timestamp.Format("15:04:05.000"), ev.Capability, ev.Status)
	}
}

// echoCustomerNotices prints customer-identified notices in verbose mode.
func echoCustomerNotices(notices <-chan status.CustomerIdentified) {
	for n := range notices {
		fmt.Fprintf(os.Stderr, "  [%s] customer identified: %s (%s)\n", n.Timestamp.Format("15:04:05.000"), n.Name, n.ClaimRef)
	}
}
