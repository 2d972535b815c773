package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fjod/go_meals/internal/catalog"
	h "github.com/fjod/go_meals/internal/http"
	"github.com/fjod/go_meals/internal/order"
)

type Config struct {
	HTTPPort           string
	CatalogPath        string
	OrderStore         string
	OrdersPath         string
	DBPath             string
	MigrationsPath     string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64

	Postgres order.Credentials
}

func loadConfig() *Config {
	pgPort, err := strconv.Atoi(getEnv("POSTGRES_PORT", "5432"))
	if err != nil {
		log.Fatalf("invalid POSTGRES_PORT: %v", err)
	}

	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "3000"),
		CatalogPath:        getEnv("CATALOG_PATH", "./data/available-meals.json"),
		OrderStore:         getEnv("ORDER_STORE", "file"),
		OrdersPath:         getEnv("ORDERS_PATH", "./data/orders.json"),
		DBPath:             getEnv("DB_PATH", "./data/orders.db"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "./migrations/sqlite"),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
		Postgres: order.Credentials{
			Host:              getEnv("POSTGRES_HOST", "localhost"),
			Port:              pgPort,
			User:              getEnv("POSTGRES_USER", "postgres"),
			Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:            getEnv("POSTGRES_DB", "orders"),
			MigrationsDirPath: getEnv("MIGRATIONS_PATH", "./migrations/postgres"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func newStore(cfg *Config) (order.Store, error) {
	switch cfg.OrderStore {
	case "file":
		return order.NewFileStore(cfg.OrdersPath), nil
	case "sqlite":
		store, err := order.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := store.RunMigrations(cfg.MigrationsPath); err != nil {
			return nil, err
		}
		log.Println("Migrations completed successfully")
		return store, nil
	case "postgres":
		store, err := order.NewPostgresStore(&cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := store.RunMigrations(&cfg.Postgres); err != nil {
			return nil, err
		}
		log.Println("Migrations completed successfully")
		return store, nil
	default:
		return nil, errors.New("unknown ORDER_STORE: " + cfg.OrderStore)
	}
}

func main() {
	cfg := loadConfig()

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to set up order store: %v", err)
	}
	defer store.Close()

	mealsHandler := h.NewMealsHandler(catalog.NewFileRepository(cfg.CatalogPath))
	ordersHandler := h.NewOrdersHandler(order.NewService(store))

	router := h.NewRouter(mealsHandler, ordersHandler, cfg.RequestTimeout, cfg.MaxRequestBodySize)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "go_meals"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Food order service starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
