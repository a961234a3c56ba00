package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"mindmate-backend/internal/config"
	"mindmate-backend/internal/database"
	"mindmate-backend/internal/handlers"
	"mindmate-backend/internal/middleware"
	"mindmate-backend/internal/repository"
	"mindmate-backend/internal/router"
	"mindmate-backend/internal/services"
	"mindmate-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Mind Mate Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Redis Client (optional) ────
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = database.NewRedisClient(cfg.RedisURL, cfg.RedisPoolSize)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		log.Printf("✓ Redis connected (pool=%d)", redisClient.Options().PoolSize)
	}

	// ──── Step 3: Initialize Mood Store ────
	var moodRepo repository.MoodRepository
	switch cfg.StorageType {
	case "postgres":
		if cfg.DatabaseURL == "" {
			log.Fatal("✗ STORAGE_TYPE=postgres requires DATABASE_URL")
		}
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("✗ PostgreSQL connection failed: %v", err)
		}
		defer pool.Close()
		if err := database.RunMigrations(pool); err != nil {
			log.Fatalf("✗ Database migration failed: %v", err)
		}
		moodRepo = repository.NewPostgresMoodRepo(pool)
		log.Println("✓ PostgreSQL mood store ready")
	case "redis":
		if redisClient == nil {
			log.Fatal("✗ STORAGE_TYPE=redis requires REDIS_URL")
		}
		moodRepo = repository.NewRedisMoodRepo(redisClient)
		log.Println("✓ Redis mood store ready")
	default:
		moodRepo = repository.NewFileMoodRepo(cfg.DataPath, cfg.StoragePartition)
		log.Printf("✓ File mood store ready (%s, partition=%s)", cfg.DataPath, cfg.StoragePartition)
	}

	// ──── Step 4: Resolve AI Provider ────
	var completer services.Completer
	switch cfg.ResolveProvider() {
	case "groq":
		completer = services.NewGroqService(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, nil)
		log.Printf("✓ Groq AI initialized (model %s, key %s...)", cfg.GroqModel, keyPrefix(cfg.GroqAPIKey))
	case "gemini":
		geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, 5)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiService.Close()
		completer = geminiService
		log.Printf("✓ Gemini initialized (model %s)", cfg.GeminiModel)
	default:
		log.Println("⚠ No AI provider key found, using fallback responses")
	}
	replyService := services.NewReplyService(completer, cfg.LLMTimeout)

	// ──── Step 5: Identity ────
	var jwtAuth *middleware.JWTAuth
	if cfg.JWTSecret != "" {
		jwtAuth = middleware.NewJWTAuth(cfg.JWTSecret)
		log.Println("✓ Bearer token identity enabled")
	}

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClient)
	log.Println("✓ WebSocket hub started")

	// ──── Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(replyService, cfg.StreamDelay)
	moodHandler := handlers.NewMoodHandler(moodRepo, wsHub, jwtAuth == nil)
	summaryHandler := handlers.NewSummaryHandler(moodRepo, replyService)
	googleFitHandler := handlers.NewGoogleFitHandler(
		services.NewGoogleFitService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI),
	)

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		chatHandler,
		moodHandler,
		summaryHandler,
		googleFitHandler,
		wsHub,
		cfg.ChatRateLimit,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	info := replyService.Info()
	log.Printf("✓ Mind Mate Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  AI:  %s (%s, %s)", info.Provider, info.Model, info.Status)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

func keyPrefix(key string) string {
	if len(key) <= 6 {
		return "***"
	}
	return key[:6]
}
