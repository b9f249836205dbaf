package cli

import (
	"github.com/spf13/cobra"

	"qr-quiz-service/internal/config"
	"qr-quiz-service/internal/infra/local"
)

// NewPlayCmd starts the interactive terminal client.
func NewPlayCmd(configPath *string) *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play quizzes in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.Local.Path = dataDir
			}

			res, err := openResources(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer res.Close()

			store, err := local.Open(cfg.Local.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			t := newTerminal(res.service(), res.catalog, store.Identity(), cmd.InOrStdin(), cmd.OutOrStdout())
			return t.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of the local player profile (overrides config)")
	return cmd
}
