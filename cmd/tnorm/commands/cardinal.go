package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_text_normalization/pkg/cardinal"
)

func newCardinalCommand(opts *globalOptions) *cobra.Command {
	var (
		alternatives int
		base         bool
	)
	cmd := &cobra.Command{
		Use:   "cardinal <number>",
		Short: "Read a single numeral",
		Long: `Read a single numeral with the restricted cardinal grammar, or with the
base grammar when --base is set. Exits with an error when the grammar does
not apply.`,
		Example: `  tnorm cardinal 12,345
  tnorm cardinal --base -n 3 --nondeterministic 2500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Close()

			deterministic := cfg.Normalizer.Deterministic
			cacheOpts := []cardinal.Option{
				cardinal.WithCacheDir(cfg.Normalizer.CacheDir),
				cardinal.WithLogger(logger),
			}
			var g *cardinal.Grammar
			if base {
				g, err = cardinal.New(append(cacheOpts, cardinal.WithDeterministic(deterministic))...)
			} else {
				g, err = cardinal.NewRestricted(deterministic, cacheOpts...)
			}
			if err != nil {
				return err
			}

			paths := g.Alternatives(args[0], alternatives)
			if len(paths) == 0 {
				return fmt.Errorf("%s does not read %q", g.Name(), args[0])
			}
			out := cmd.OutOrStdout()
			if alternatives <= 1 {
				fmt.Fprintln(out, paths[0].Output)
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, p := range paths {
				fmt.Fprintf(w, "%.3f\t%s\n", float64(p.Weight), p.Output)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&alternatives, "alternatives", "n", 1, "Number of readings to print")
	cmd.Flags().BoolVar(&base, "base", false, "Use the base grammar, which reads every digit string")
	return cmd
}
