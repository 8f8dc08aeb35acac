package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/blob"
	"clinic-management-api/internal/clinic"
	"clinic-management-api/internal/config"
	"clinic-management-api/internal/handler"
	"clinic-management-api/internal/logger"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/seed"
	"clinic-management-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	// record store: postgres when DATABASE_URL is set, per-profile files otherwise
	var rs store.RecordStore
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPGStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			zlog.Fatal("store", zap.Error(err))
		}
		defer pg.Close()
		rs = pg
		zlog.Info("record store: postgres")
	} else {
		fs, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			zlog.Fatal("store", zap.Error(err))
		}
		rs = fs
		zlog.Info("record store: file", zap.String("dir", cfg.DataDir))
	}

	seeded, err := seed.Ensure(rs, false)
	if err != nil {
		zlog.Fatal("seed", zap.Error(err))
	}
	if seeded {
		zlog.Info("demo data seeded")
	}

	sessions := auth.NewSessions(rs, zlog)
	sessions.Hydrate()

	clinicSvc := clinic.New(rs, zlog)
	blobs := blob.NewRegistry(cfg.AllowedFileTypes, cfg.MaxFileSize)
	h := handler.New(clinicSvc, sessions, blobs, rs, cfg.JWTSecret, zlog)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRPS, cfg.LoginBurst)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.Routes(loginLimiter),
	}
	go func() {
		zlog.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Error("http", zap.Error(err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}
