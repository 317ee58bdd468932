package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"woodsim/internal/adapters"
	"woodsim/internal/bootstrap"
	"woodsim/internal/delivery/status"
	"woodsim/internal/errors"
	"woodsim/internal/report"
	"woodsim/internal/repository"
	gameuc "woodsim/internal/usecase/game"
	"woodsim/internal/usecase/simulation"
)

const shutdownTimeout = 5 * time.Second

type resultStores struct {
	mongoAdapter *adapters.AdapterMongo
	redisAdapter *adapters.AdapterRedis
	observers    []simulation.Observer
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := bootstrap.NewFlagSet("woodsim")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := bootstrap.Setup(fs)
	if err != nil {
		fmt.Fprintln(stderr, "Failed to setup configuration:", err)
		return err
	}

	logger := NewLogger(cfg, stderr)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go handleShutdown(ctx, cancel, logger)

	engine := repository.NewGnuGoRepository(cfg, logger)
	version, err := engine.CheckVersion(ctx)
	if err != nil {
		logger.Errorw("engine check failed", "path", cfg.GnuGoPath, "error", err)
		if stderrors.Is(err, errors.ErrEngineNotFound) {
			fmt.Fprintf(stderr, "Error: GNU Go engine not found (%s)\n", cfg.GnuGoPath)
			fmt.Fprintln(stderr, "Make sure GNU Go is installed and reachable through --gnugo-path.")
		}
		return err
	}

	stores, err := initResultStores(ctx, logger, cfg)
	if err != nil {
		logger.Errorw("failed to init result stores", "error", err)
		return err
	}
	defer stores.Close(context.WithoutCancel(ctx))

	observers := stores.observers
	var hub *status.Hub
	if cfg.StatusAddr != "" {
		hub = status.NewHub(logger)
		defer hub.Close()
		observers = append(observers, hub)
	}

	sim := simulation.NewSimulator(
		engine,
		repository.NewRecordStore(cfg.GamesDir, logger),
		gameuc.NewPositionGenerator(cfg.Seed),
		logger,
		simulation.WithWorkers(cfg.Workers),
		simulation.WithObservers(observers...),
		simulation.WithProgress(report.NewTextReporter(stdout)),
	)
	tally := sim.Prepare(cfg.Games)

	if hub != nil {
		server, err := status.NewServer(cfg.StatusAddr, status.NewStatusHandler(logger, tally, hub), logger)
		if err != nil {
			logger.Errorw("failed to start status server", "addr", cfg.StatusAddr, "error", err)
			return err
		}
		server.Start()
		defer func() {
			ctxShutdown, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancelShutdown()
			if err := server.Shutdown(ctxShutdown); err != nil {
				logger.Warnw("status server shutdown", "error", err)
			}
		}()
	}

	if cfg.GrpcAddr != "" {
		health, err := status.NewHealthServer(cfg.GrpcAddr, logger)
		if err != nil {
			logger.Errorw("failed to start grpc health server", "addr", cfg.GrpcAddr, "error", err)
			return err
		}
		health.Start()
		health.SetServing(true)
		defer health.Stop()
		defer health.SetServing(false)
	}

	fmt.Fprintf(stdout, "Simulating %d Wood rule games\n", cfg.Games)
	fmt.Fprintf(stdout, "Engine: %s (%s)\n", cfg.GnuGoPath, version)

	summary, runErr := sim.Run(ctx, cfg.Games)
	report.WriteSummary(stdout, summary)

	if cfg.ReportPdf != "" {
		if err := report.WritePDF(summary, cfg.ReportPdf); err != nil {
			logger.Errorw("failed to write pdf report", "path", cfg.ReportPdf, "error", err)
		} else {
			logger.Infow("pdf report written", "path", cfg.ReportPdf)
		}
	}

	if runErr != nil {
		logger.Warnw("simulation interrupted", "error", runErr)
	}
	return runErr
}

func NewLogger(cfg *bootstrap.Config, w io.Writer) *zap.SugaredLogger {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.LogFormat == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core).Sugar()
}

func initResultStores(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) (*resultStores, error) {
	stores := &resultStores{}

	if cfg.MongoUri != "" {
		mongoAdapter := adapters.NewAdapterMongo(cfg, log)
		if err := mongoAdapter.Init(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", errors.ErrStoreInit, err)
		}
		stores.mongoAdapter = mongoAdapter
		stores.observers = append(stores.observers, repository.NewMongoResultStore(mongoAdapter.Database, log))
	}

	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(cfg, log)
		if err := redisAdapter.Init(ctx); err != nil {
			stores.Close(ctx)
			return nil, fmt.Errorf("%w: %v", errors.ErrStoreInit, err)
		}
		stores.redisAdapter = redisAdapter
		stores.observers = append(stores.observers, repository.NewRedisResultStore(redisAdapter.GetClient(), log))
	}

	if len(stores.observers) > 0 {
		log.Info("result stores initialized")
	}
	return stores, nil
}

func (s *resultStores) Close(ctx context.Context) {
	if s.mongoAdapter != nil {
		_ = s.mongoAdapter.Close(ctx)
	}
	if s.redisAdapter != nil {
		_ = s.redisAdapter.Close(ctx)
	}
}

func handleShutdown(ctx context.Context, cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		log.Info("Received shutdown signal")
		cancelFunc()
	case <-ctx.Done():
	}
}
