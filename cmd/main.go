// Package main is the entry point for the prompt engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/compresr/prompt-engine/internal/config"
	"github.com/compresr/prompt-engine/internal/monitoring"
)

// Version is set at build time via ldflags
var Version = "v0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	provider   string
	model      string
	baseURL    string
	apiKey     string
	promptsDir string
	logFormat  string
	debug      bool
}

func main() {
	loadEnvFiles()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "prompt-engine",
		Short:         "Prompt Engine - rewrite, score, shorten and fix prompts with an LLM",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&gf.configPath, "config", "c", "", "path to YAML config file")
	pf.StringVarP(&gf.provider, "provider", "p", "", "provider: openai, openai_compatible, anthropic, gemini")
	pf.StringVarP(&gf.model, "model", "m", "", "model name")
	pf.StringVar(&gf.baseURL, "base-url", "", "provider base URL")
	pf.StringVar(&gf.apiKey, "api-key", "", "API key for OpenAI-like providers")
	pf.StringVar(&gf.promptsDir, "prompts-dir", "", "directory holding the prompt templates")
	pf.StringVar(&gf.logFormat, "log-format", "auto", "log format: auto, console, json")
	pf.BoolVarP(&gf.debug, "debug", "d", false, "enable debug logging")

	rootCmd.AddCommand(processCmd(gf))
	rootCmd.AddCommand(analyzeCmd(gf))
	rootCmd.AddCommand(optimizeCmd(gf))
	rootCmd.AddCommand(fixCmd(gf))
	rootCmd.AddCommand(historyCmd(gf))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// loadEnvFiles loads .env from standard locations
func loadEnvFiles() {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configEnv := filepath.Join(homeDir, ".config", "prompt-engine", ".env")
		if _, err := os.Stat(configEnv); err == nil {
			_ = godotenv.Load(configEnv)
		}
	}

	// Local .env does not override variables that are already set.
	_ = godotenv.Load()
}

// loadConfig resolves the client configuration from flags, file and env.
func loadConfig(gf *globalFlags) (*config.ClientConfig, error) {
	ov := config.Overrides{
		Provider: gf.provider,
		APIKey:   gf.apiKey,
		BaseURL:  gf.baseURL,
		Model:    gf.model,
	}

	var (
		cfg *config.ClientConfig
		err error
	)
	if gf.configPath != "" {
		cfg, err = config.LoadWithOverrides(gf.configPath, ov)
	} else {
		cfg, err = config.New(ov)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if gf.promptsDir != "" {
		cfg.PromptsDir = gf.promptsDir
	}
	if gf.debug {
		cfg.Monitoring.LogLevel = "debug"
	}
	return cfg, nil
}

// setupLogging configures the global zerolog logger.
func setupLogging(gf *globalFlags, mc config.MonitoringConfig) *monitoring.Logger {
	cfg := monitoring.LoggerConfig{
		Level:  mc.LogLevel,
		Format: logFormat(gf.logFormat, int(os.Stderr.Fd())),
		Output: mc.LogOutput,
	}
	return monitoring.Global(cfg)
}

// logFormat resolves "auto" to console on a terminal and json otherwise.
func logFormat(flag string, fd int) string {
	switch flag {
	case "console", "json":
		return flag
	}
	if term.IsTerminal(fd) {
		return "console"
	}
	return "json"
}
