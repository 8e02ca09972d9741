package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"listing-checkout/internal/catalog"
	"listing-checkout/internal/checkout"
	"listing-checkout/internal/client"
	"listing-checkout/internal/config"
	"listing-checkout/internal/handler"
	"listing-checkout/internal/logging"
	"listing-checkout/internal/payment"
	"listing-checkout/internal/repository"
	"listing-checkout/internal/server"
	"listing-checkout/internal/storage"
	"listing-checkout/internal/verification"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log)
	defer log.Sync()

	db := client.InitSqliteClient(cfg.DatabasePath)
	rdb := client.InitRedisClient(cfg.RedisAddr)

	planRepo := repository.NewPlanRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := planRepo.Seed(seedCtx); err != nil {
		log.Warn("could not seed plan catalog", zap.Error(err))
	}
	seedCancel()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()

	watcher := catalog.NewWatcher(planRepo, catalog.NewRedisNotifier(rdb), log)
	watcher.Start(watchCtx)

	objectStore := storage.NewFSStore(cfg.Storage.Root, cfg.Storage.PublicBaseURL)

	checkoutService := checkout.NewService(watcher, sessionRepo)
	paymentOrchestrator := payment.NewOrchestrator(cfg.Payment.SettlementDelay, checkoutService, log)
	verificationOrchestrator := verification.NewOrchestrator(objectStore, verificationRepo, log)

	srv := server.NewServer(
		cfg.JWTSecret,
		log,
		handler.NewCatalogHandler(watcher),
		handler.NewCheckoutHandler(checkoutService),
		handler.NewPaymentHandler(paymentOrchestrator, log),
		handler.NewVerificationHandler(verificationOrchestrator),
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	watchCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
