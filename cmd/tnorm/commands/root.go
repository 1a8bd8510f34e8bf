// Package commands implements the tnorm command line.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"
	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_text_normalization/internal/config"
	"github.com/baditaflorin/go_text_normalization/pkg/normalizer"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configFile       string
	logFile          string
	taggerSet        string
	cacheDir         string
	nondeterministic bool
}

// NewRootCommand builds the tnorm command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "tnorm",
		Short: "Text normalization for English numerals",
		Long: `tnorm rewrites written text into its spoken form, for example
"12,345" becomes "twelve thousand three hundred forty five".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Path to a YAML config file")
	pf.StringVar(&opts.logFile, "log-file", "", "Log file path (empty = stderr)")
	pf.StringVar(&opts.taggerSet, "set", "", "Tagger set: small or full")
	pf.StringVar(&opts.cacheDir, "cache-dir", "", "Directory for compiled grammars")
	pf.BoolVar(&opts.nondeterministic, "nondeterministic", false, "Allow weighted alternative readings")

	root.AddCommand(
		newNormalizeCommand(opts),
		newCardinalCommand(opts),
		newCompileCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

// load reads the config file and applies the flags that were set.
func (o *globalOptions) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("set") {
		cfg.Normalizer.TaggerSet = o.taggerSet
	}
	if flags.Changed("cache-dir") {
		cfg.Normalizer.CacheDir = o.cacheDir
	}
	if flags.Changed("nondeterministic") {
		cfg.Normalizer.Deterministic = !o.nondeterministic
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger writes to stderr so stdout carries only command output.
func newLogger(cfg config.LogConfig) (l.Logger, error) {
	var output io.Writer = os.Stderr
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}
	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     output,
		JsonFormat: cfg.JSON,
		AddSource:  false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// normalizerOptions maps the configuration onto the public options.
func normalizerOptions(cfg config.Config, logger l.Logger) []normalizer.Option {
	nc := cfg.Normalizer
	return []normalizer.Option{
		normalizer.WithTaggerSet(nc.TaggerSet),
		normalizer.WithDeterministic(nc.Deterministic),
		normalizer.WithPreprocessor(nc.Preprocessor),
		normalizer.WithMaxTokenLength(nc.MaxTokenLength),
		normalizer.WithCacheSize(nc.CacheSize),
		normalizer.WithCacheDir(nc.CacheDir),
		normalizer.WithStream(cfg.Stream.BatchSize, cfg.Stream.Workers),
		normalizer.WithLogger(logger),
	}
}
