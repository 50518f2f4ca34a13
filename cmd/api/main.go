package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Windi-Fikriyansyah/agency_be/internal/config"
	"github.com/Windi-Fikriyansyah/agency_be/internal/db"
	"github.com/Windi-Fikriyansyah/agency_be/internal/logging"
	"github.com/Windi-Fikriyansyah/agency_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/agency_be/internal/routes"
	"github.com/Windi-Fikriyansyah/agency_be/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis not reachable, notifications stay on this instance")
			rdb = nil
		} else {
			log.WithField("addr", cfg.RedisAddr).Info("redis connected")
		}
	}

	hub := realtime.NewHub(log)
	broker := realtime.NewBroker(rdb, hub, log)
	go broker.Run(ctx)

	tokens := utils.NewTokenService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	app := routes.NewApp(routes.Deps{
		Config:    cfg,
		DB:        gdb,
		Tokens:    tokens,
		Log:       log,
		Hub:       hub,
		Broker:    broker,
		AccessLog: true,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}()

	log.WithField("port", cfg.AppPort).Info("listening")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
