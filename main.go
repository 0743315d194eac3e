package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/miketth/wise/pkg/axbridge"
	"codeberg.org/miketth/wise/pkg/config"
	"codeberg.org/miketth/wise/pkg/directivestore/json"
	"codeberg.org/miketth/wise/pkg/directivestore/memory"
	"codeberg.org/miketth/wise/pkg/directivestore/sqlite"
	"codeberg.org/miketth/wise/pkg/registry"
	"codeberg.org/miketth/wise/pkg/wise"
	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var errNotTrusted = errors.New("wise needs accessibility permissions to work")

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bridgeDir := cfg.BridgeDir
	if bridgeDir == "" {
		bridgeDir, err = axbridge.DefaultDir()
		if err != nil {
			return fmt.Errorf("find bridge: %w", err)
		}
	}
	bridge := axbridge.NewBridge(bridgeDir, cfg.RequestTimeout)

	trusted, err := bridge.Trusted(ctx)
	if err != nil {
		return fmt.Errorf("check accessibility permissions: %w", err)
	}
	if !trusted {
		return errNotTrusted
	}

	core, err := wise.NewCoreSet(cfg.CoreApps)
	if err != nil {
		return fmt.Errorf("core apps: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	store, err := openStore(ctx, g, cfg, log)
	if err != nil {
		return fmt.Errorf("open directive store: %w", err)
	}

	client, err := axbridge.Connect(ctx, bridgeDir)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	manager := wise.NewManager(core, registry.New(), bridge, bridge, store, systemdReporter{log: log}, log)

	log.Infow("started wise", "core_apps", cfg.CoreApps, "store", cfg.Store)

	events := make(chan wise.Event, 64)

	g.Go(func() error {
		return manager.Run(ctx, events)
	})

	g.Go(func() error {
		if err := wise.Seed(ctx, bridge, events); err != nil {
			return fmt.Errorf("manage existing windows: %w", err)
		}

		err := manager.Forward(ctx, client, events)
		if err != nil {
			return fmt.Errorf("forward bridge events: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return wise.PollEvery(ctx, cfg.PollInterval, events)
	})

	g.Go(func() error {
		err := systemdNotifyLoop(ctx, core.Len())
		if err != nil {
			return fmt.Errorf("systemd notify: %w", err)
		}
		return nil
	})

	err = g.Wait()
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("shutting down")
		return nil
	case err != nil:
		return err
	}

	return nil
}

// openStore picks the directive memory backend. Stores that need background
// work or cleanup register it on g.
func openStore(ctx context.Context, g *errgroup.Group, cfg *config.Config, log *zap.SugaredLogger) (wise.DirectiveStore, error) {
	switch cfg.Store {
	case config.StoreJSON:
		store, err := json.NewDirectiveStore(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			err := store.SaveLooper(ctx)
			if err != nil {
				return fmt.Errorf("save directives: %w", err)
			}
			return nil
		})
		return store, nil

	case config.StoreSQLite:
		store, err := sqlite.NewDirectiveStore(cfg.StorePath, log)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			<-ctx.Done()
			if err := store.Close(); err != nil {
				return fmt.Errorf("close directive db: %w", err)
			}
			return ctx.Err()
		})
		return store, nil
	}

	return memory.NewDirectiveStore(), nil
}

type systemdReporter struct {
	log *zap.SugaredLogger
}

func (r systemdReporter) ReportPermissionDenied(registry.WindowHandle, error) {
	_, notifyErr := daemon.SdNotify(false, "STATUS=Accessibility permission denied, windows are not being managed")
	if notifyErr != nil {
		r.log.Warnw("could not report status to systemd", "error", notifyErr)
	}
}

func systemdNotifyLoop(ctx context.Context, coreApps int) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, fmt.Sprintf("STATUS=Keeping %d core apps in place", coreApps))

	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
