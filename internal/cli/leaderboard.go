package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"qr-quiz-service/internal/config"
)

// NewLeaderboardCmd prints the ranked table for one quiz or all of them.
func NewLeaderboardCmd(configPath *string) *cobra.Command {
	var quizID string
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			res, err := openResources(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer res.Close()

			lb, err := res.service().Leaderboard(cmd.Context(), quizID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if quizID == "" {
				fmt.Fprintln(out, "Leaderboard (all quizzes)")
			} else {
				fmt.Fprintf(out, "Leaderboard (%s)\n", quizID)
			}
			renderEntries(out, lb.Entries, questionCount(res.catalog, quizID))
			return nil
		},
	}
	cmd.Flags().StringVar(&quizID, "quiz", "", "quiz id to filter by")
	return cmd
}
