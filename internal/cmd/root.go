package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

const DefaultServer = "http://localhost:8080"

type ConfigFile struct {
	Server  string `toml:"server"`
	Timeout string `toml:"timeout"`
}

type DssCtlApp struct {
	ConfigPath string
	Server     string
	Timeout    time.Duration
	Client     *http.Client
}

func Execute() error {
	app := &DssCtlApp{}
	rootCmd := NewRootCmd(app)
	return rootCmd.Execute()
}

func NewRootCmd(app *DssCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dss-ctl",
		Short:         "CLI tool used to inspect the railway traffic-control dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.configure(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(
		&app.ConfigPath,
		"toml",
		"",
		"Path to configuration file",
	)
	cmd.PersistentFlags().StringVar(
		&app.Server,
		"server",
		DefaultServer,
		"Dashboard base URL",
	)
	cmd.PersistentFlags().DurationVar(
		&app.Timeout,
		"timeout",
		10*time.Second,
		"HTTP timeout per request",
	)

	cmd.AddCommand(NewTrainsCmd(app))
	cmd.AddCommand(NewRecommendationCmd(app))
	cmd.AddCommand(NewAuditCmd(app))
	cmd.AddCommand(NewHistoryCmd(app))
	cmd.AddCommand(NewFeedCmd(app))
	cmd.AddCommand(NewHealthCmd(app))

	return cmd
}

// configure applies the TOML file and RAILDSS_SERVER underneath any flag the
// user set explicitly.
func (app *DssCtlApp) configure(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if app.ConfigPath != "" {
		var file ConfigFile
		if _, err := toml.DecodeFile(app.ConfigPath, &file); err != nil {
			return fmt.Errorf("load %s: %w", app.ConfigPath, err)
		}
		if file.Server != "" && !flags.Changed("server") {
			app.Server = file.Server
		}
		if file.Timeout != "" && !flags.Changed("timeout") {
			timeout, err := time.ParseDuration(file.Timeout)
			if err != nil {
				return fmt.Errorf("timeout: %w", err)
			}
			app.Timeout = timeout
		}
	}

	if server := os.Getenv("RAILDSS_SERVER"); server != "" && !flags.Changed("server") {
		app.Server = server
	}

	app.Server = strings.TrimRight(app.Server, "/")
	if app.Client == nil {
		app.Client = &http.Client{Timeout: app.Timeout}
	}
	return nil
}
