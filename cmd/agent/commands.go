package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	agentapp "github.com/atlas-it/atlas-agent/internal/app/agent"
	"github.com/atlas-it/atlas-agent/internal/config"
	"github.com/atlas-it/atlas-agent/internal/infra/logger"
	"github.com/atlas-it/atlas-agent/internal/usecase/ticket"
)

type globalOptions struct {
	configPath string
	logLevel   string
}

// bootstrap loads configuration and builds the application. The returned
// closer releases the log file.
func bootstrap(opts *globalOptions) (*agentapp.Application, *slog.Logger, io.Closer, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	log, closer, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("logger: %w", err)
	}
	return agentapp.NewApplication(cfg, log), log, closer, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newContextCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the current device context as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, closer, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			return printJSON(cmd.OutOrStdout(), app.Collector().Collect(cmd.Context()))
		},
	}
}

func newSubmitCommand(opts *globalOptions) *cobra.Command {
	var form ticket.Form
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "File a support ticket with the current device context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, closer, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			dc := app.Collector().Collect(cmd.Context())
			res, err := app.Tickets().Submit(cmd.Context(), form, dc)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Success {
				return errors.New(res.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "ticket title")
	cmd.Flags().StringVar(&form.Body, "body", "", "problem description")
	cmd.Flags().StringVar(&form.Priority, "priority", "medium", "low, medium, high or urgent")
	cmd.Flags().StringVar(&form.Category, "category", "", "ticket category")
	cmd.Flags().StringVar(&form.Urgency, "urgency", "", "low, medium or high")
	cmd.Flags().StringVar(&form.Email, "email", "", "contact email; looked up from the device when omitted")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}

func newTicketsCommand(opts *globalOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List tickets filed under an email address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, closer, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			res, err := app.Tickets().List(cmd.Context(), email)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Success {
				return errors.New(res.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newHealthCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the helpdesk API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, closer, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			if !app.Tickets().Health(cmd.Context()) {
				return errors.New("helpdesk API is unreachable")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "reachable")
			return nil
		},
	}
}

func newServeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local API used by the tray window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, log, closer, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closer.Close()

			log.Info("starting atlas-agent",
				"version", config.Version,
				"build_time", config.BuildTime,
			)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			err = app.Serve(ctx, func(port int, tokenPath string) {
				log.Info("local api ready", "port", port, "token_file", tokenPath)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info("agent stopped cleanly")
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the agent version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "atlas-agent %s (built %s)\n", config.Version, config.BuildTime)
		},
	}
}
