package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_text_normalization/internal/core/domain"
	"github.com/baditaflorin/go_text_normalization/pkg/normalizer"
)

func newNormalizeCommand(opts *globalOptions) *cobra.Command {
	var (
		file       string
		showTokens bool
	)
	cmd := &cobra.Command{
		Use:   "normalize [text...]",
		Short: "Rewrite text into spoken form",
		Long: `Rewrite the arguments into spoken form. Without arguments the input is
read line by line from --file or stdin.`,
		Example: `  tnorm normalize "I have 12345 apples"
  tnorm normalize --set full -f notes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			n, err := normalizer.New(normalizerOptions(cfg, logger)...)
			if err != nil {
				logger.Close()
				return err
			}
			defer n.Close()

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				res, err := n.Normalize(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, res.Normalized)
				if showTokens {
					for _, tok := range res.Tokens {
						if tok.Class != domain.ClassName {
							fmt.Fprintln(out, tok.String())
						}
					}
				}
				return nil
			}

			var in io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			stats, err := n.NormalizeStream(cmd.Context(), in, out)
			if err != nil {
				return err
			}
			logger.Info("Normalized input",
				"lines", stats.Lines,
				"bytes", stats.BytesProcessed,
				"duration", stats.ProcessingTime,
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read input from file (- = stdin)")
	cmd.Flags().BoolVar(&showTokens, "tokens", false, "Also print the tagged tokens")
	return cmd
}
