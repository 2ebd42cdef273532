package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/maisonvela/vela-backend/internal/notifications"
	"github.com/maisonvela/vela-backend/pkg/config"
	"github.com/maisonvela/vela-backend/pkg/logger"
	"github.com/maisonvela/vela-backend/pkg/mailer"
	"github.com/maisonvela/vela-backend/pkg/pubsub"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "notifications-worker"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "notifications-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)

	if !cfg.Mail.Enabled() {
		logg.Warn(ctx, "smtp not configured, order emails will be logged and dropped")
	}
	mail := mailer.New(cfg.Mail, logg)

	consumer, err := notifications.NewConsumer(mail, pubsubClient.OrdersSubscription(), logg)
	requireResource(ctx, logg, "notifications consumer", err)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"env": cfg.App.Env,
	})
	logg.Info(runCtx, "notifications worker ready")

	runErr := consumer.Run(runCtx)
	if runErr != nil && errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if err := multierr.Append(runErr, pubsubClient.Close()); err != nil {
		logg.Error(runCtx, "notifications worker not working", err)
		os.Exit(1)
	}

	logg.Info(runCtx, "notifications worker stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
