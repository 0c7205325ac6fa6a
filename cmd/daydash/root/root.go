package root

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"daydash/internal/config"
	"daydash/internal/logging"
	"daydash/internal/storage"
	"daydash/internal/store"
	"daydash/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:           "daydash",
	Short:         "daydash — local-first personal productivity dashboard",
	Long:          "daydash is a local-first terminal dashboard for tasks, calendar events, and notes.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Parse()
		if err != nil {
			return err
		}

		log := openLogger(cfg)
		defer log.Sync()

		backend, err := openBackend(cfg)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer backend.Close()

		st := store.New(backend, log)

		app := ui.NewApp(st)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run application: %w", err)
		}
		return nil
	},
}

// Execute runs the command tree
func Execute(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.AddCommand(
		newExportCmd(),
		newClearCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openBackend picks the storage backend for the configured run mode
func openBackend(cfg config.Config) (storage.Backend, error) {
	if cfg.Ephemeral {
		return storage.NewMemory(), nil
	}
	return storage.OpenSQLite(cfg.DBPath())
}

// openLogger opens the diagnostic log. Diagnostics are best-effort: a
// logger that cannot be built degrades to a nop, never to a startup
// failure.
func openLogger(cfg config.Config) *zap.SugaredLogger {
	if cfg.Ephemeral {
		return logging.Nop()
	}
	log, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return logging.Nop()
	}
	return log
}
