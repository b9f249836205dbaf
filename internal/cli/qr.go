package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"qr-quiz-service/internal/config"
	"qr-quiz-service/internal/domain"
	"qr-quiz-service/internal/qr"
)

// NewQRCmd groups the QR code helpers.
func NewQRCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Generate and read quiz QR codes",
	}
	cmd.AddCommand(newQREncodeCmd(configPath), newQRDecodeCmd(configPath))
	return cmd
}

func newQREncodeCmd(configPath *string) *cobra.Command {
	var (
		outDir string
		size   int
	)
	cmd := &cobra.Command{
		Use:   "encode [quiz-id...]",
		Short: "Write one PNG per quiz (all quizzes when none are given)",
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

			quizzes := res.catalog.List()
			if len(args) > 0 {
				quizzes = quizzes[:0]
				for _, id := range args {
					quiz, err := res.catalog.Get(id)
					if err != nil {
						return fmt.Errorf("%s: %w", id, err)
					}
					quizzes = append(quizzes, quiz)
				}
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for _, quiz := range quizzes {
				png, err := qr.Encode(quiz.ID, size)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, quiz.ID+".png")
				if err := os.WriteFile(path, png, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", quiz.Title, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "qr", "output directory")
	cmd.Flags().IntVar(&size, "size", qr.DefaultSize, "image size in pixels")
	return cmd
}

func newQRDecodeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <image>",
		Short: "Read a QR image and show the quiz it opens",
		Args:  cobra.ExactArgs(1),
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

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			text, err := qr.Decode(f)
			if err != nil {
				return err
			}
			quiz, err := res.catalog.Resolve(text)
			if err != nil {
				return fmt.Errorf("%q: %w", text, domain.ErrInvalidQRCode)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d questions)\n", quiz.ID, quiz.Title, len(quiz.Questions))
			return nil
		},
	}
}
