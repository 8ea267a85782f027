package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/smartnsoft/beatbox/internal/artwork"
	"github.com/smartnsoft/beatbox/internal/catalog"
	"github.com/smartnsoft/beatbox/internal/config"
	"github.com/smartnsoft/beatbox/internal/domain"
	"github.com/smartnsoft/beatbox/internal/extractor"
	"github.com/smartnsoft/beatbox/internal/mpris"
	"github.com/smartnsoft/beatbox/internal/playback"
	"github.com/smartnsoft/beatbox/internal/player"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the full dependency graph of the daemon
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	// Provide dependencies
	fx.Provide(
		newLogger,
		fx.Annotate(config.NewAppConfig, fx.As(new(domain.Config))),
		fx.Annotate(extractor.NewTagExtractor, fx.As(new(domain.Extractor))),
		fx.Annotate(catalog.New,
			fx.As(new(playback.Library)),
			fx.As(new(artwork.Library)),
			fx.As(new(mpris.Browser)),
		),
		fx.Annotate(player.NewSpeakerOutput, fx.As(new(player.Output))),
		fx.Annotate(player.NewBeepFactory, fx.As(new(domain.PlayerFactory))),
		fx.Annotate(player.NewSlot, fx.As(new(playback.PlayerSlot))),
		fx.Annotate(artwork.NewServer, fx.As(fx.Self()), fx.As(new(mpris.ArtResolver))),
		fx.Annotate(mpris.NewPublisher, fx.As(fx.Self()), fx.As(new(domain.Publisher))),
		fx.Annotate(playback.NewController, fx.As(fx.Self()), fx.As(new(mpris.Commander))),
		mpris.NewServer,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	app := fx.New(AppOptions)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		panic(err)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	// Stop the application gracefully
	if err := app.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// registerHooks starts the controller before anything can send it commands.
// fx runs OnStop hooks in reverse, so the bus goes away first.
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	cfg domain.Config,
	ctrl *playback.Controller,
	art *artwork.Server,
	bus *mpris.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("BeatBox Daemon Started",
				zap.String("mediaDir", cfg.GetMediaDir()),
				zap.String("busName", bus.BusName()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			return nil
		},
	})
	lc.Append(fx.Hook{OnStart: ctrl.Start, OnStop: ctrl.Stop})
	lc.Append(fx.Hook{OnStart: art.Start, OnStop: art.Stop})
	lc.Append(fx.Hook{OnStart: bus.Start, OnStop: bus.Stop})
}
