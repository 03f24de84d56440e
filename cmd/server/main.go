package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmoshkin/clothes_shop/internal/config"
	"github.com/dmoshkin/clothes_shop/internal/db"
	"github.com/dmoshkin/clothes_shop/internal/events"
	"github.com/dmoshkin/clothes_shop/internal/httpserver"
	"github.com/dmoshkin/clothes_shop/internal/logging"
	"github.com/dmoshkin/clothes_shop/internal/payment"
	"github.com/dmoshkin/clothes_shop/internal/repo"
	"github.com/dmoshkin/clothes_shop/internal/search"
	"github.com/dmoshkin/clothes_shop/internal/service"
)

func main() {
	cfg := config.Load()
	cfg.MustValidate()

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	prod := events.NewProducer(cfg.KafkaBrokers)

	esClient, err := search.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch error: %v", err)
	}
	indexer := &search.Indexer{ES: esClient, Index: cfg.ESIndex}

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)

	r := repo.New(database)

	authSvc := &service.AuthService{Repo: r, JWTSecret: cfg.JWTSecret, RefreshSecret: cfg.RefreshSecret}
	catalogSvc := &service.CatalogService{Repo: r}
	cartSvc := &service.CartService{Repo: r}
	checkoutSvc := &service.CheckoutService{Repo: r}
	paymentSvc := &service.PaymentService{Repo: r, Gateway: gateway, Currency: cfg.Currency}
	statusSvc := &service.StatusService{Repo: r, Gateway: gateway}
	reportSvc := &service.ReportService{Repo: r}
	addressSvc := &service.AddressService{Repo: r}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	deps := httpserver.Deps{
		JWTSecret:       cfg.JWTSecret,
		AuthHandler:     &httpserver.AuthHandler{Svc: authSvc, Producer: prod},
		ProductHandler:  &httpserver.ProductHandler{Svc: catalogSvc, Producer: prod, Indexer: indexer},
		CartHandler:     &httpserver.CartHandler{Svc: cartSvc},
		CheckoutHandler: &httpserver.CheckoutHandler{Checkout: checkoutSvc, Cart: cartSvc, Payments: paymentSvc, Producer: prod},
		AddressHandler:  &httpserver.AddressHandler{Svc: addressSvc},
		AdminHandler:    &httpserver.AdminHandler{Status: statusSvc, Reports: reportSvc},
		SearchHandler:   &httpserver.SearchHandler{Indexer: indexer},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
