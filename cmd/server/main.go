package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_text_normalization/internal/config"
	"github.com/baditaflorin/go_text_normalization/internal/metrics"
	"github.com/baditaflorin/go_text_normalization/pkg/cardinal"
	"github.com/baditaflorin/go_text_normalization/pkg/normalizer"
)

// Default configuration
const (
	DefaultConcurrency = 0 // 0 means use GOMAXPROCS
)

func main() {
	// Parse command-line flags. Flags that are set explicitly override the
	// config file.
	defaults := config.Default()
	configFile := flag.String("config", "", "YAML config file (empty = built-in defaults)")
	port := flag.Int("port", defaults.Server.Port, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", defaults.Server.ReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", defaults.Server.WriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", defaults.Server.MaxBodySize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	taggerSet := flag.String("tagger-set", defaults.Normalizer.TaggerSet, "Tagger set: small or full")
	cacheDir := flag.String("cache-dir", "", "Directory for compiled grammars (empty = compile on start)")
	warmUp := flag.Bool("warm-up", defaults.WarmUp.Enabled, "Perform system warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Server.Port = *port
		case "read-timeout":
			cfg.Server.ReadTimeout = *readTimeout
		case "write-timeout":
			cfg.Server.WriteTimeout = *writeTimeout
		case "max-request-size":
			cfg.Server.MaxBodySize = *maxRequestSize
		case "tagger-set":
			cfg.Normalizer.TaggerSet = *taggerSet
		case "cache-dir":
			cfg.Normalizer.CacheDir = *cacheDir
		case "warm-up":
			cfg.WarmUp.Enabled = *warmUp
		case "log-file":
			cfg.Log.File = *logFile
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logger
	logger, err := createLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting text normalization HTTP server",
		"port", cfg.Server.Port,
		"read_timeout", cfg.Server.ReadTimeout,
		"write_timeout", cfg.Server.WriteTimeout,
		"max_request_size", cfg.Server.MaxBodySize,
		"concurrency", *concurrency,
		"tagger_set", cfg.Normalizer.TaggerSet,
	)

	m := metrics.New()
	srv, err := initServer(cfg, logger, m)
	if err != nil {
		logger.Error("Failed to load grammars", "error", err)
		logger.Close()
		os.Exit(1)
	}
	// Closing the normalizer closes the shared logger.
	defer srv.normalizer.Close()

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               srv.requestHandler,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		MaxRequestBodySize:    cfg.Server.MaxBodySize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
		Logger:                nil, // we'll handle logging ourselves
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		logger.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// initServer compiles the grammars served by the HTTP handlers. The
// normalizer and the restricted grammar share the compiled grammar cache.
func initServer(cfg config.Config, logger l.Logger, m *metrics.Metrics) (*server, error) {
	nc := cfg.Normalizer
	tn, err := normalizer.New(
		normalizer.WithTaggerSet(nc.TaggerSet),
		normalizer.WithDeterministic(nc.Deterministic),
		normalizer.WithPreprocessor(nc.Preprocessor),
		normalizer.WithMaxTokenLength(nc.MaxTokenLength),
		normalizer.WithCacheSize(nc.CacheSize),
		normalizer.WithCacheDir(nc.CacheDir),
		normalizer.WithStream(cfg.Stream.BatchSize, cfg.Stream.Workers),
		normalizer.WithWarmUp(cfg.WarmUp.Enabled),
		normalizer.WithLogger(logger),
		normalizer.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("normalizer: %w", err)
	}

	restricted, err := cardinal.NewRestricted(nc.Deterministic,
		cardinal.WithCacheDir(nc.CacheDir),
		cardinal.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("restricted cardinal: %w", err)
	}
	base, err := cardinal.New(
		cardinal.WithDeterministic(nc.Deterministic),
		cardinal.WithCacheDir(nc.CacheDir),
		cardinal.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("cardinal: %w", err)
	}

	cardinals := map[string]*cardinal.Grammar{
		grammarRestricted: restricted,
		grammarBase:       base,
	}
	return newServer(logger, tn, cardinals, m, cfg.Server.MaxAlternatives), nil
}

// createLogger creates a configured logger
func createLogger(cfg config.LogConfig) (l.Logger, error) {
	// Create a logger factory
	factory := l.NewStandardFactory()

	// Configure the logger
	var output io.Writer = os.Stdout
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	// Create the logger
	logger, err := factory.CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  cfg.JSON,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}
