package main

import (
	"flag"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"k8s.io/client-go/dynamic"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/potooio/signpost/internal/adapters"
	"github.com/potooio/signpost/internal/api"
	"github.com/potooio/signpost/internal/config"
	"github.com/potooio/signpost/internal/discovery"
)

func main() {
	var (
		configPath    string
		listenAddress string
		logLevel      string
	)

	flag.StringVar(&configPath, "config", "", "Path to the YAML configuration file. Defaults are used when empty.")
	flag.StringVar(&listenAddress, "listen-address", "", "Address the HTTP API binds to. Overrides the configuration file.")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	flag.Parse()

	// Setup logger
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		os.Stderr.WriteString("invalid -log-level: " + err.Error() + "\n")
		os.Exit(2)
	}
	logConfig := zap.NewProductionConfig()
	logConfig.Level = zap.NewAtomicLevelAt(level)
	logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := logConfig.Build()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Invalid configuration", zap.String("path", configPath), zap.Error(err))
	}
	if listenAddress != "" {
		cfg.ListenAddress = listenAddress
	}

	registry, err := adapters.NewBuiltinRegistry(cfg.Adapters)
	if err != nil {
		logger.Fatal("Failed to build adapter registry", zap.Error(err))
	}

	logger.Info("Starting Signpost",
		zap.String("version", "dev"),
		zap.Strings("adapters", registry.Names()),
		zap.Strings("namespaces", cfg.NamespaceSelector.Namespaces()),
		zap.String("instance", cfg.Instance),
	)

	restConfig := ctrl.GetConfigOrDie()
	restConfig.Timeout = cfg.QueryTimeout.Duration
	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		logger.Fatal("Failed to create dynamic client", zap.Error(err))
	}

	engine := discovery.NewEngine(logger, dynamicClient, registry, discovery.Options{
		Workers:       cfg.Workers,
		QueryTimeout:  cfg.QueryTimeout.Duration,
		LabelSelector: cfg.LabelSelector,
	})

	server := api.NewServer(logger, engine, api.Options{
		ListenAddress:   cfg.ListenAddress,
		Instance:        cfg.Instance,
		Namespaces:      cfg.NamespaceSelector.Namespaces(),
		CacheTTL:        cfg.CacheTTL.Duration,
		RefreshInterval: cfg.RefreshInterval.Duration,
		AllowedOrigins:  cfg.AllowedOrigins,
	})

	ctx := ctrl.SetupSignalHandler()
	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
	logger.Info("Signpost stopped")
}
