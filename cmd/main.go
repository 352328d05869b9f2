package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mikhailv/number-feed/internal/config"
	"github.com/mikhailv/number-feed/internal/feed"
	"github.com/mikhailv/number-feed/internal/log"
	"github.com/mikhailv/number-feed/internal/metrics"
	"github.com/mikhailv/number-feed/internal/server"
	"github.com/mikhailv/number-feed/internal/setup"
	"github.com/mikhailv/number-feed/internal/stream"
)

func main() {
	ctx := setup.ListenStopSignal(context.Background())

	configFile := flag.String("config", "./config.yaml", "config file path")
	pprofAddr := flag.String("pprof", "", "pprof handler address")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	usingDefaults := false
	cfg, err := config.LoadConfig(*configFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg, usingDefaults = config.DefaultConfig(), true
	case err != nil:
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v", err)
		os.Exit(1)
	}

	logger, logStream := setupLogger(*debug, cfg.History.LogSize)
	if usingDefaults {
		logger.Info("config file not found, using defaults", "file", *configFile)
	}

	setup.Pprof(ctx, *pprofAddr, logger)

	feedSvc := feed.NewService(log.WithPrefix(logger, "feed"), cfg.Values, cfg.History.ValueSize)
	metrics.ObservePendingValues(feedSvc.PendingValues)
	go feedSvc.Run(ctx)
	feedSvc.StartAutoEmit(ctx, cfg.AutoEmit)

	listenConfigUpdate(logger, *configFile, 5*time.Second, func(cfg config.Config) {
		feedSvc.UpdateValues(cfg.Values)
	})

	httpServer := server.NewHTTPServer(cfg.HTTPAddr, log.WithPrefix(logger, "http"), feedSvc, logStream)
	go httpServer.Serve(ctx)

	<-ctx.Done()
}

func setupLogger(debug bool, historySize int) (*slog.Logger, *stream.Buffered[log.Entry]) {
	var recorder log.Recorder
	logger := setup.Logger(debug, func(handler slog.Handler) slog.Handler {
		recorder = log.NewRecorder(handler, historySize)
		return recorder
	})
	return logger, recorder.Stream()
}

func listenConfigUpdate(logger *slog.Logger, configFile string, updateCheckInterval time.Duration, onUpdate func(cfg config.Config)) {
	getModTime := func() (time.Time, bool) {
		f, err := os.Stat(configFile)
		if err != nil {
			return time.Time{}, false
		}
		return f.ModTime(), true
	}

	reloadConfig := func() bool {
		if cfg, err := config.LoadConfig(configFile); err != nil {
			logger.Error("failed to load config", "err", err)
			return false
		} else {
			logger.Info("config change detected")
			onUpdate(*cfg)
			return true
		}
	}

	modTime, _ := getModTime()

	go func() {
		for range time.Tick(updateCheckInterval) {
			if t, ok := getModTime(); ok && t.After(modTime) {
				if reloadConfig() {
					modTime = t
				}
			}
		}
	}()
}
