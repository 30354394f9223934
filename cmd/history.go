package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/compresr/prompt-engine/internal/config"
	"github.com/compresr/prompt-engine/internal/monitoring"
	"github.com/compresr/prompt-engine/internal/store"
)

// newTracker builds the telemetry tracker for the configured sink.
func newTracker(mc config.MonitoringConfig) (*monitoring.Tracker, error) {
	if !mc.TelemetryEnabled || mc.TelemetryPath == "" {
		return monitoring.NewNoopTracker(), nil
	}

	tcfg := monitoring.TelemetryConfig{
		Enabled:     true,
		LogPath:     mc.TelemetryPath,
		LogToStdout: mc.LogToStdout,
	}
	if mc.TelemetrySink == config.SinkSQLite {
		callLog, err := store.Open(mc.TelemetryPath)
		if err != nil {
			return nil, err
		}
		return monitoring.NewTrackerWithSink(tcfg, callLog), nil
	}
	return monitoring.NewTracker(tcfg)
}

func historyCmd(gf *globalFlags) *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent provider calls from the SQLite call log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				cfg, err := loadConfig(gf)
				if err != nil {
					return err
				}
				if cfg.Monitoring.TelemetrySink != config.SinkSQLite || cfg.Monitoring.TelemetryPath == "" {
					return fmt.Errorf("no SQLite call log configured; pass --db or set monitoring.telemetry_sink: sqlite")
				}
				dbPath = cfg.Monitoring.TelemetryPath
			}

			callLog, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer callLog.Close()

			events, err := callLog.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), events)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite call log path (default: configured telemetry path)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of calls to show")
	return cmd
}

func printHistory(w io.Writer, events []monitoring.CallEvent) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOP\tPROVIDER\tMODEL\tSTATUS\tLATENCY\tERROR")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Timestamp.Local().Format(time.DateTime),
			e.Operation,
			e.Provider,
			e.Model,
			e.Status,
			time.Duration(e.LatencyMs)*time.Millisecond,
			e.Error,
		)
	}
	return tw.Flush()
}
