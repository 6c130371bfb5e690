package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"confhub-backend/internal/api"
	"confhub-backend/internal/app"
	"confhub-backend/internal/config"
	"confhub-backend/internal/logger"
	"confhub-backend/internal/reminder"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	log.Info("confhub starting", slog.String("wiring", a.Describe()))

	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	deps := api.Deps{
		Events:        a.Events,
		Auth:          a.Auth,
		Notifications: a.Notifications,
		DB:            a.DB,
		Tokens:        a.Tokens,
		Location:      a.Location,
		Log:           log,
	}
	if a.Newsletter != nil {
		deps.Newsletter = a.Newsletter
	}
	api.SetupRoutes(router, api.NewServer(deps), cfg.GetCORSOrigins())

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Reminder.Enabled {
		sched, err := reminder.New(log, cfg.Reminder.Schedule, a.Location, a.Notifications, a.Auth)
		if err != nil {
			return err
		}
		g.Go(func() error { return sched.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("confhub stopped")
	return nil
}
