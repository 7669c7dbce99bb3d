package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/JosephSijo/finhub/internal/advisor"
	advisorStore "github.com/JosephSijo/finhub/internal/advisor/store"
	"github.com/JosephSijo/finhub/internal/config"
	"github.com/JosephSijo/finhub/internal/database"
	finhubHttp "github.com/JosephSijo/finhub/internal/http"
	advisorHandler "github.com/JosephSijo/finhub/internal/http/advisor"
	"github.com/JosephSijo/finhub/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := advisorStore.New(db)

	var cache advisor.Cache
	if cfg.Redis.Addr != "" {
		cache = advisor.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr}))
	}

	advisorService := advisor.NewService(store, cache)

	sched := scheduler.New(store, slog.Default())
	if err := sched.Start(cfg.Scheduler.Spec); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	router := finhubHttp.New(advisorHandler.NewHandler(advisorService))

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
