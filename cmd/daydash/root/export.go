package root

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"daydash/internal/config"
	"daydash/internal/models"
	"daydash/internal/store"
)

// exportPayload is the full-snapshot export format
type exportPayload struct {
	Tasks  []models.Task  `json:"tasks"`
	Events []models.Event `json:"events"`
	Notes  []models.Note  `json:"notes"`
}

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Parse()
			if err != nil {
				return err
			}

			backend, err := openBackend(cfg)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer backend.Close()

			st := store.New(backend, openLogger(cfg))
			st.Load()
			snap := st.Snapshot()

			raw, err := json.MarshalIndent(exportPayload{
				Tasks:  snap.Tasks,
				Events: snap.Events,
				Notes:  snap.Notes,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export: %w", err)
			}
			raw = append(raw, '\n')

			if output == "" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			return os.WriteFile(output, raw, 0644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
