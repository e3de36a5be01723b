package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"

	"meowbot/internal/config"
	"meowbot/internal/handlers"
	"meowbot/internal/registry"
	"meowbot/internal/router"
	"meowbot/internal/services"
	"meowbot/internal/store"
)

func main() {
	log.Println("🚀 Starting the bot...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Load Registered Users ────
	reg, err := registry.Load(cfg.RegisteredUsersFile)
	if err != nil {
		log.Fatalf("✗ Registered users load failed: %v", err)
	}
	log.Println("✓ Registered users loaded")

	// ──── Step 3: Initialize OpenAI Client ────
	openAIService := services.NewOpenAIService(cfg.OpenAIAPIKey)
	log.Println("✓ OpenAI client initialized")

	// ──── Step 4: Build Dispatcher and Telegram Bot ────
	conversations := store.New()

	// The dispatcher needs the bot as its transport and the bot needs the
	// dispatcher's default handler, so the closure resolves the cycle.
	var dispatcher *handlers.Dispatcher
	b, err := bot.New(cfg.BotToken, bot.WithDefaultHandler(
		func(ctx context.Context, b *bot.Bot, update *tgmodels.Update) {
			dispatcher.HandleDefault(ctx, b, update)
		},
	))
	if err != nil {
		log.Fatalf("✗ Telegram bot initialization failed: %v", err)
	}
	dispatcher = handlers.NewDispatcher(reg, conversations, openAIService, b)
	dispatcher.Register(b)
	log.Println("✓ Telegram bot initialized")

	// ──── Step 5: Start Health Server ────
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router.New(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Health server error: %v", err)
		}
	}()
	log.Printf("✓ Health endpoint ready on http://localhost:%s/health", cfg.Port)

	// ──── Step 6: Poll Until Signalled ────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("✓ Bot ready, polling for updates")
	b.Start(ctx)

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)
}
