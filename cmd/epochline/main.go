package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	clientcmd "github.com/epochline/epochline/internal/cmd/client"
	serverrun "github.com/epochline/epochline/internal/cmd/server"
	cfgpkg "github.com/epochline/epochline/internal/config"
	logpkg "github.com/epochline/epochline/pkg/log"
)

func main() {
	// initialize logger for CLI
	// Respect EPOCHLINE_LOG_LEVEL for both CLI and server start output
	level := os.Getenv("EPOCHLINE_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "epochline",
		Short: "Epochline timeline CLI",
		Long:  "Epochline is a single-binary timeline service. This CLI manages the server and basic operations.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start epochline server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			configPath, _ := cmd.Flags().GetString("config")
			storeURL, _ := cmd.Flags().GetString("store-url")
			storePath, _ := cmd.Flags().GetString("store-path")
			storeToken, _ := cmd.Flags().GetString("store-token")
			ownerToken, _ := cmd.Flags().GetString("owner-token")
			maxRetries, _ := cmd.Flags().GetInt("max-retries")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg := cfgpkg.Default()
			if configPath != "" {
				loaded, err := cfgpkg.Load(configPath)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cfg = loaded
			}
			cfgpkg.FromEnv(&cfg)
			if storeURL != "" {
				cfg.Store.BaseURL = storeURL
			}
			if storePath != "" {
				cfg.Store.DocPath = storePath
			}
			if storeToken != "" {
				cfg.Store.AuthToken = storeToken
			}
			if ownerToken != "" {
				cfg.Owner.Token = ownerToken
			}
			if cmd.Flags().Changed("max-retries") {
				cfg.MaxRetries = maxRetries
			}
			if logLevel != "" {
				_ = os.Setenv("EPOCHLINE_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				_ = os.Setenv("EPOCHLINE_LOG_FORMAT", logFormat)
			}
			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:  dataDir,
				HTTPAddr: httpAddr,
				Config:   cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	serverStartCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("http", "", "HTTP listen address (default from config, :8080)")
	serverStartCmd.Flags().String("config", "", "Path to a JSON config file")
	serverStartCmd.Flags().String("store-url", "", "Remote document store base URL")
	serverStartCmd.Flags().String("store-path", "", "Document path on the remote store")
	serverStartCmd.Flags().String("store-token", "", "Auth token for the remote store")
	serverStartCmd.Flags().String("owner-token", "", "Bearer token granting the owner capability")
	serverStartCmd.Flags().Int("max-retries", cfgpkg.Default().MaxRetries, "Conflict retry budget for mutations")
	serverStartCmd.Flags().String("log-level", os.Getenv("EPOCHLINE_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("EPOCHLINE_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// client commands (events, seed)
	rootCmd.AddCommand(clientcmd.NewEventsCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewSeedCommand(apiURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("EPOCHLINE_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
