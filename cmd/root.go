// Package cmd contains the CLI command tree. Commands are pure consumers:
// each one calls a session operation and renders the result; no business
// logic lives here.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/facupepi/serviapp-cli/internal/config"
	"github.com/facupepi/serviapp-cli/internal/logger"
	"github.com/facupepi/serviapp-cli/internal/notify"
	"github.com/facupepi/serviapp-cli/internal/session"
)

var (
	jsonOut bool
	yamlOut bool
	baseURL string

	// built once in getSession; commands share the handle
	sess     *session.Session
	notifier *notify.Notifier
	log      *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "serviapp",
	Short: "ServiApp marketplace client",
	Long: `serviapp is the command-line client for the ServiApp service-booking
marketplace: browse and search services, manage your own publications,
request and respond to appointments, keep favorites and leave reviews.

Examples:
  serviapp login juan@example.com
  serviapp services search --category Plomería --province Cordoba
  serviapp services create --title "Plomería integral" ...
  serviapp requests received
  serviapp favorites toggle svc_123`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output results as JSON")
	rootCmd.PersistentFlags().BoolVar(&yamlOut, "yaml", false, "output results as YAML")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the API base URL")
}

// Execute runs the root command.
func Execute() {
	defer flushToasts()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// getSession builds the session handle on first use. The session performs
// its one-time bootstrap (persisted token, profile, throttle state) in its
// constructor; there is no hidden global initialization elsewhere.
func getSession() (*session.Session, error) {
	if sess != nil {
		return sess, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}

	log, err = logger.New(cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	notifier = notify.New(nil)

	sess = session.New(session.Options{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		StateDir:   cfg.State.Dir,
		Production: cfg.IsProduction(),
		Logger:     log,
		Notifier:   notifier,
	})
	return sess, nil
}

// flushToasts prints whatever notifications the session queued during the
// command, in insertion order, before the process exits.
func flushToasts() {
	if notifier == nil || jsonOut || yamlOut {
		return
	}
	for _, n := range notifier.Snapshot() {
		switch n.Type {
		case notify.Success:
			fmt.Printf("%s %s: %s\n", colorGreen("✓"), n.Title, n.Message)
		case notify.Warning, notify.Error:
			fmt.Printf("%s %s: %s\n", colorYellow("⚠"), n.Title, n.Message)
		default:
			fmt.Printf("%s %s: %s\n", colorYellow("ℹ"), n.Title, n.Message)
		}
	}
	notifier.Clear()
}
