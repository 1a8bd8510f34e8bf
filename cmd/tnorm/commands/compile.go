package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_text_normalization/internal/adapters/kv"
	"github.com/baditaflorin/go_text_normalization/internal/adapters/logger"
	"github.com/baditaflorin/go_text_normalization/internal/core/cardinal"
	"github.com/baditaflorin/go_text_normalization/internal/core/grammar"
)

func newCompileCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Precompile the grammars into the cache directory",
		Long: `Compile every cardinal grammar variant and store it under --cache-dir so
later runs load it instead of compiling.`,
		Example: `  tnorm compile --cache-dir /var/cache/tnorm`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cfg.Normalizer.CacheDir == "" {
				return errors.New("compile needs --cache-dir or normalizer.cache_dir")
			}
			log, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			plog := logger.FromExisting(log)
			defer plog.Close()

			store, err := kv.NewBadger(kv.BadgerOptions{Dir: cfg.Normalizer.CacheDir, Logger: plog})
			if err != nil {
				return err
			}
			defer store.Close()
			cache := grammar.NewCache(store, plog)

			for _, deterministic := range []bool{true, false} {
				start := time.Now()
				if _, err := cardinal.New(cardinal.WithDeterministic(deterministic), cardinal.WithCache(cache)); err != nil {
					return err
				}
				if _, err := cardinal.NewRestricted(deterministic, cardinal.WithCache(cache)); err != nil {
					return err
				}
				plog.Info("Compiled grammars", "deterministic", deterministic, "duration", time.Since(start))
			}

			entries, err := cache.Entries(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tBYTES")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%d\n", e.Key, e.Bytes)
			}
			return w.Flush()
		},
	}
	return cmd
}
