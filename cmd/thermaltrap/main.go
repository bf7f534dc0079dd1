package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/heatwatch/thermaltrap/internal/chain/httprpc"
	"github.com/heatwatch/thermaltrap/internal/chain/replay"
	"github.com/heatwatch/thermaltrap/internal/chain/static"
	"github.com/heatwatch/thermaltrap/internal/config"
	"github.com/heatwatch/thermaltrap/internal/dispatch/logemit"
	"github.com/heatwatch/thermaltrap/internal/metrics"
	"github.com/heatwatch/thermaltrap/internal/operator"
	regopolicy "github.com/heatwatch/thermaltrap/internal/policy/rego"
	"github.com/heatwatch/thermaltrap/internal/trap/thermal"
	pklconfig "github.com/heatwatch/thermaltrap/pkg/config"
	"github.com/heatwatch/thermaltrap/pkg/trap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Register Prometheus metrics
	metrics.MustRegister()

	cfg, configSHA, err := pklconfig.Evaluate(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.WithField("config_sha", configSHA).Info("configuration loaded")
	fmt.Printf("Configuration loaded successfully:\n%s\n", spew.Sdump(cfg))

	reader, err := buildReader(cfg)
	if err != nil {
		log.Fatalf("Failed to build chain reader: %v", err)
	}

	policy, err := buildPolicy(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build trigger policy: %v", err)
	}

	spikeTrap := thermal.New(reader, policy, thermal.CollectOpts{
		PerReadTimeout: cfg.Trap.CollectTimeout.GoDuration(),
		MaxSampleAge:   cfg.Trap.MaxSampleAge.GoDuration(),
	})
	dispatcher := logemit.New(logger, trap.NewAllowList(cfg.Dispatcher.AllowedOrigins...))
	runner := operator.New(spikeTrap, dispatcher, operator.Config{
		PollInterval: cfg.Operator.PollInterval.GoDuration(),
		WindowSize:   cfg.Operator.WindowSize,
		Origin:       cfg.Operator.Origin,
	}, logger)

	// Start metrics server
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		listenAddr := cfg.Prometheus.ListenAddr
		logger.WithField("addr", listenAddr).Info("starting metrics server")
		if err := http.ListenAndServe(listenAddr, nil); err != nil {
			log.Fatalf("Failed to start metrics server: %v", err)
		}
	}()

	logger.WithFields(logrus.Fields{
		"reader": reader.Describe().ID,
		"policy": policy.ID(),
	}).Info("operator loop starting")

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Runner stopped: %v", err)
	}
}

func buildReader(cfg *config.AppConfig) (trap.ChainReader, error) {
	switch cfg.Chain.Source {
	case "static":
		return static.NewFromConfig(cfg), nil
	case "replay":
		return replay.Load(cfg.Chain.FixturePath)
	case "http":
		return httprpc.New(cfg.Chain.BaseUrl, cfg.Chain.CacheTTL.GoDuration()), nil
	default:
		return nil, fmt.Errorf("unknown chain source %q", cfg.Chain.Source)
	}
}

func buildPolicy(ctx context.Context, cfg *config.AppConfig) (trap.TriggerPolicy, error) {
	threshold := uint64(cfg.Trap.ThresholdPercent)
	switch cfg.Trap.Policy {
	case "both-exceed":
		return trap.BothExceed{ThresholdPercent: threshold}, nil
	case "either-exceeds":
		return trap.EitherExceeds{ThresholdPercent: threshold}, nil
	case "rego":
		return regopolicy.Load(ctx, cfg.Trap.RegoPolicyPath, regopolicy.DefaultQuery, threshold)
	default:
		return nil, fmt.Errorf("unknown trigger policy %q", cfg.Trap.Policy)
	}
}
