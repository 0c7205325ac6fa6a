package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"daydash/internal/config"
)

func newClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all persisted data",
		Long:  "Delete all persisted tasks, events, and notes. The next run starts from the built-in sample data.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}

			cfg, err := config.Parse()
			if err != nil {
				return err
			}

			backend, err := openBackend(cfg)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer backend.Close()

			if err := backend.Clear(); err != nil {
				return fmt.Errorf("clear storage: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
