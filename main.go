package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"obsidian-club/internal/auth"
	"obsidian-club/internal/chat"
	chat_api "obsidian-club/internal/chat/api"
	chat_db "obsidian-club/internal/chat/db"
	"obsidian-club/internal/chat/knowledge"
	"obsidian-club/internal/chat/llm"
	"obsidian-club/internal/chat/session"
	"obsidian-club/internal/config"
	"obsidian-club/internal/database/migrations"
	"obsidian-club/internal/events"
	events_api "obsidian-club/internal/events/api"
	events_db "obsidian-club/internal/events/db"
	hero_api "obsidian-club/internal/hero/api"
	hero_db "obsidian-club/internal/hero/db"
	"obsidian-club/internal/kafka"
	"obsidian-club/internal/logger"
	"obsidian-club/internal/menu"
	menu_api "obsidian-club/internal/menu/api"
	menu_db "obsidian-club/internal/menu/db"
	"obsidian-club/internal/reservations"
	reservations_api "obsidian-club/internal/reservations/api"
	reservations_db "obsidian-club/internal/reservations/db"
	"obsidian-club/internal/uploads"
	uploads_api "obsidian-club/internal/uploads/api"
)

func connectPostgres(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	if cfg.DSN == "" {
		log.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err == nil {
			err = sqldb.Ping()
			if err == nil {
				break
			}
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info("DATABASE", "✅ PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		// The session store degrades open without Redis: chat keeps working,
		// only the duplicate-booking guard is lost.
		log.Warn("REDIS", fmt.Sprintf("Redis unreachable at %s, chat sessions degrade open: %v", cfg.Addr, err))
		return client
	}
	log.Info("REDIS", fmt.Sprintf("✅ Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Obsidian Club backend initialization")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	location, err := time.LoadLocation(cfg.Venue.Timezone)
	if err != nil {
		logger.Warn("CONFIG", fmt.Sprintf("Unknown timezone %q, falling back to UTC", cfg.Venue.Timezone))
		location = time.UTC
	}

	bunDB := connectPostgres(cfg.Database, logger)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg.Redis, logger)
	defer redisClient.Close()

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.DefaultOptions(), logger)
		if err := runner.RunMigrations(); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka, logger)
		defer producer.Close()
		if err := kafka.EnsureTopicsExist(cfg.Kafka); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			logger.Info("KAFKA", "Required topics ensured successfully")
		}
	} else {
		logger.Warn("KAFKA", "Kafka disabled, staff notifications will not be published")
	}

	// A nil *Producer must stay a nil interface, otherwise the services
	// would call through it.
	var reservationPublisher reservations.Publisher
	var chatPublisher chat.LogPublisher
	if producer != nil {
		reservationPublisher = producer
		chatPublisher = producer
	}

	eventsDB := &events_db.DB{Bun: bunDB}
	menuDB := &menu_db.DB{Bun: bunDB}
	reservationsDB := &reservations_db.DB{Bun: bunDB}
	heroDB := &hero_db.DB{Bun: bunDB}
	chatDB := &chat_db.DB{Bun: bunDB}

	eventsService := events.NewService(eventsDB, location, logger)
	menuService := menu.NewService(menuDB, logger)
	reservationsService := reservations.NewService(reservationsDB, reservationPublisher, logger)

	knowledgeBuilder := &knowledge.Builder{
		Events:   eventsDB,
		Menu:     menuDB,
		Location: location,
		Warn:     func(msg string) { logger.Warn("KNOWLEDGE", msg) },
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	llmClient := llm.NewClient(cfg.LLM, httpClient, logger)
	invoker := &llm.Invoker{
		Client: llmClient,
		Policy: llm.Policy{
			Models:      cfg.LLM.Models,
			MaxAttempts: cfg.LLM.MaxAttempts,
			Backoff:     llm.LinearBackoff(2 * time.Second),
		},
		Warn: func(msg string) { logger.Warn("LLM", msg) },
	}

	sessionStore := session.NewStore(redisClient, cfg.Redis.SessionTTL, logger)
	chatService := chat.NewService(knowledgeBuilder, invoker, reservationsService,
		sessionStore, chatDB, chatPublisher, logger)

	storageClient := uploads.NewClient(cfg.Storage, httpClient, logger)

	chatHandler := &chat_api.Handler{Service: chatService, Logger: logger}
	reservationsHandler := &reservations_api.Handler{Service: reservationsService, Logger: logger}
	eventsHandler := &events_api.Handler{Service: eventsService, Logger: logger}
	menuHandler := &menu_api.Handler{Service: menuService, MenuPDFURL: cfg.Venue.MenuPDFURL, Logger: logger}
	heroHandler := &hero_api.Handler{DB: heroDB, Logger: logger}
	uploadHandler := uploads_api.NewHandler(storageClient, logger)

	logger.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	// --- Public Routes ---
	r.Post("/api/chat", chatHandler.Chat)
	r.Post("/api/reservations", reservationsHandler.CreateReservation)
	r.Get("/api/events", eventsHandler.ListEvents)
	r.Get("/api/menu", menuHandler.ListItems)
	r.Get("/api/menu/qr", menuHandler.MenuQR)
	r.Get("/api/categories", menuHandler.ListCategories)
	r.Get("/api/hero-images", heroHandler.ListImages)
	logger.Info("ROUTER", "Public routes registered under /api")

	// --- Protected Routes (back office) ---
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.Auth.JWTSecret))
		logger.Info("AUTH", "JWT middleware applied to back-office routes")

		r.Route("/api", func(r chi.Router) {
			r.Get("/reservations", reservationsHandler.ListReservations)
			r.Patch("/reservations", reservationsHandler.UpdateStatus)
			r.Get("/admin/stats", reservationsHandler.Stats)

			r.Post("/events", eventsHandler.CreateEvent)
			r.Patch("/events", eventsHandler.UpdateEvent)
			r.Delete("/events", eventsHandler.DeleteEvent)

			r.Post("/menu", menuHandler.CreateItem)
			r.Patch("/menu", menuHandler.UpdateItem)
			r.Delete("/menu", menuHandler.DeleteItem)

			r.Post("/categories", menuHandler.CreateCategory)
			r.Patch("/categories", menuHandler.UpdateCategory)
			r.Delete("/categories", menuHandler.DeleteCategory)

			r.Post("/hero-images", heroHandler.CreateImage)
			r.Patch("/hero-images", heroHandler.UpdateImage)
			r.Delete("/hero-images", heroHandler.DeleteImage)

			r.Post("/upload", uploadHandler.Upload)
		})
		logger.Info("ROUTER", "Back-office routes registered under /api")
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Obsidian Club backend running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		logger.Info("HTTP", "Server shut down gracefully")
	}
}
