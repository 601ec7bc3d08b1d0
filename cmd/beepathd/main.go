// Command beepathd serves grid sessions and live search streams over HTTP.
//
// Configuration comes from the environment (optionally a .env file); see
// package config for the keys. With REDIS_ADDR set, layouts live in Redis
// and the "search in progress" guard is shared across replicas.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/beepath/animate"
	"github.com/katalvlaran/beepath/api"
	"github.com/katalvlaran/beepath/config"
	"github.com/katalvlaran/beepath/service"
	"github.com/katalvlaran/beepath/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "beepathd: %v\n", err)
		os.Exit(1)
	}
	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "beepathd: %v\n", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.GinMode)

	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithDelays(animate.Delays{Search: cfg.SearchDelay, Path: cfg.PathDelay}),
		service.WithDefaults(service.Defaults{Rows: cfg.GridRows, Cols: cfg.GridCols, Density: cfg.WallDensity}),
	}
	persistence, closeFn, err := initPersistence(cfg, log)
	if err != nil {
		log.WithError(err).Error("persistence init failed")
		os.Exit(1)
	}
	defer closeFn()
	svcOpts = append(svcOpts, persistence...)

	svc := service.New(svcOpts...)
	router := api.NewRouter(api.Config{
		Addr:        cfg.Addr,
		BaseURL:     cfg.BaseURL,
		Controllers: []api.Controller{api.NewGridController(svc, log)},
		Logger:      log,
	})
	log.Info("router initialized")

	if err := router.Run(); err != nil {
		log.WithError(err).Error("starting server")
		os.Exit(1)
	}
}

// initPersistence selects Redis when REDIS_ADDR is set and the in-memory
// store otherwise.
func initPersistence(cfg config.Config, log *logrus.Logger) ([]service.Option, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("using in-memory grid store")
		return []service.Option{service.WithStore(store.NewMemoryStore(cfg.SessionTTL))}, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	log.WithField("addr", cfg.RedisAddr).Info("connected to redis")
	return []service.Option{
		service.WithStore(store.NewRedisStore(client, "", cfg.SessionTTL)),
		service.WithGuard(store.NewRedisGuard(client, "", 0, log)),
	}, func() { _ = client.Close() }, nil
}
