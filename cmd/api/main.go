package main

import (
	"database/sql"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"

	"github.com/cafekiosk/cafekiosk-backend/internal/modules/auth"
	"github.com/cafekiosk/cafekiosk-backend/internal/modules/catalog"
	"github.com/cafekiosk/cafekiosk-backend/internal/modules/mail"
	"github.com/cafekiosk/cafekiosk-backend/internal/modules/order"
	"github.com/cafekiosk/cafekiosk-backend/internal/modules/stock"
	"github.com/cafekiosk/cafekiosk-backend/internal/modules/user"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, relying on environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("Failed to reach database")
	}

	if err := runMigrations(databaseURL); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}
	log.Info("Connected to database, schema up to date")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	requireAuth := auth.Authenticator(jwtSecret)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router, requireAuth)

	authService := auth.NewService(userRepo, jwtSecret)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Catalog & Stock ─────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router, requireAuth)

	stockRepo := stock.NewPostgresRepository(db)
	stockService := stock.NewService(stockRepo)
	stock.NewHandler(stockService).RegisterRoutes(router, requireAuth)

	// ── Orders & Statistics ─────────────────────────────────
	mailHistoryRepo := mail.NewPostgresHistoryRepository(db)
	mailService := mail.NewService(mail.NewLogClient(), mailHistoryRepo)

	statisticsFrom := os.Getenv("STATISTICS_MAIL_FROM")
	if statisticsFrom == "" {
		statisticsFrom = "no-reply@cafekiosk.local"
	}

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	statisticsService := order.NewStatisticsService(orderRepo, mailService, statisticsFrom)
	order.NewHandler(orderService, statisticsService).RegisterRoutes(router, requireAuth)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.WithFields(log.Fields{"port": port}).Info("Cafekiosk API server starting")
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func runMigrations(databaseURL string) error {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
