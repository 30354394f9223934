package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/compresr/prompt-engine/internal/llm"
	"github.com/compresr/prompt-engine/internal/monitoring"
)

// runner holds what every operation subcommand needs.
type runner struct {
	client  *llm.Client
	tracker *monitoring.Tracker
	logger  *monitoring.Logger
}

func newRunner(gf *globalFlags) (*runner, error) {
	cfg, err := loadConfig(gf)
	if err != nil {
		return nil, err
	}
	logger := setupLogging(gf, cfg.Monitoring)

	tracker, err := newTracker(cfg.Monitoring)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	client, err := llm.New(cfg, llm.WithTracker(tracker), llm.WithLogger(logger))
	if err != nil {
		_ = tracker.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	logger.Debug().
		Str("provider", cfg.Provider.String()).
		Str("model", cfg.Model).
		Str("base_url", cfg.BaseURL).
		Bool("has_key", cfg.HasKey()).
		Msg("client ready")

	return &runner{client: client, tracker: tracker, logger: logger}, nil
}

func (r *runner) close() {
	if err := r.tracker.Close(); err != nil {
		r.logger.Error().Err(err).Msg("failed to close telemetry")
	}
	_ = r.logger.Close()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func processCmd(gf *globalFlags) *cobra.Command {
	var promptContext map[string]string

	cmd := &cobra.Command{
		Use:   "process [text|-]",
		Short: "Rewrite a prompt into system prompt, user prompt and plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			r, err := newRunner(gf)
			if err != nil {
				return err
			}
			defer r.close()

			ctx, cancel := signalContext()
			defer cancel()

			resp, err := r.client.Process(ctx, text, toContext(promptContext))
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringToStringVar(&promptContext, "context", nil, "context entries as key=value (repeatable)")
	return cmd
}

func analyzeCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [text|-]",
		Short: "Score a prompt with the quality coach",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			r, err := newRunner(gf)
			if err != nil {
				return err
			}
			defer r.close()

			ctx, cancel := signalContext()
			defer cancel()

			report, err := r.client.AnalyzePrompt(ctx, text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
}

func optimizeCmd(gf *globalFlags) *cobra.Command {
	var maxTokens, maxChars int

	cmd := &cobra.Command{
		Use:   "optimize [text|-]",
		Short: "Shorten a prompt while keeping its intent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			r, err := newRunner(gf)
			if err != nil {
				return err
			}
			defer r.close()

			ctx, cancel := signalContext()
			defer cancel()

			out, err := r.client.OptimizePrompt(ctx, text, maxTokens, maxChars)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "target maximum tokens (0 = none)")
	cmd.Flags().IntVar(&maxChars, "max-chars", 0, "target maximum characters (0 = none)")
	return cmd
}

func fixCmd(gf *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fix [text|-]",
		Short: "Rewrite a prompt with the editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			r, err := newRunner(gf)
			if err != nil {
				return err
			}
			defer r.close()

			ctx, cancel := signalContext()
			defer cancel()

			fix, err := r.client.FixPrompt(ctx, text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), fix)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "prompt-engine %s\n", Version)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
