// Package cli implements the ewskit command line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ewskit/ewskit/pkg/config"
	"github.com/ewskit/ewskit/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	configPath string
	endpoint   string
	username   string
	password   string
	logLevel   string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ewskit",
	Short: "ewskit is a SOAP client for Exchange Web Services",
	Long: `ewskit talks to Exchange Web Services endpoints: folders, items,
availability, room lists and notification subscriptions.

Configuration can be provided via flags, EWSKIT_* environment variables,
or a configuration file. By default, ewskit looks for ewskit.yaml in the
working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: ./ewskit.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "EWS endpoint URL")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Account username")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Account password")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// loadConfig builds the effective configuration: file, then environment,
// then explicit flags.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat("ewskit.yaml"); err == nil {
			path = "ewskit.yaml"
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if username != "" {
		cfg.Username = username
	}
	if password != "" {
		cfg.Password = password
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// newLogger builds the CLI logger from the effective configuration.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: os.Stderr,
	})
}

// promptConnection asks interactively for whatever connection settings
// are still missing.
func promptConnection(cfg *config.Config) error {
	var fields []huh.Field
	if cfg.Endpoint == "" {
		fields = append(fields, huh.NewInput().
			Title("What is the EWS endpoint URL?").
			Placeholder("https://mail.example.com/EWS/Exchange.asmx").
			Value(&cfg.Endpoint).
			Validate(func(s string) error {
				if s == "" {
					return errors.New("endpoint is required")
				}
				return nil
			}))
	}
	if cfg.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&cfg.Username))
	}
	if cfg.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&cfg.Password))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
