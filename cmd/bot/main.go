// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/abouzarnameh/chatbot/internal/ai"
	"github.com/abouzarnameh/chatbot/internal/bot"
	"github.com/abouzarnameh/chatbot/internal/bot/handlers"
	"github.com/abouzarnameh/chatbot/internal/bot/tasks"
	"github.com/abouzarnameh/chatbot/internal/config"
	"github.com/abouzarnameh/chatbot/internal/database"
	"github.com/abouzarnameh/chatbot/internal/history"
	"github.com/abouzarnameh/chatbot/internal/logger"
	"github.com/abouzarnameh/chatbot/internal/market"
	"github.com/abouzarnameh/chatbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes all application components, starts the bot, and returns an
// exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	err = store.Ping(pingCtx)
	cancelPing()
	if err != nil {
		log.Error("Database ping failed", "error", err)
		return 1
	}

	aiClient, err := ai.NewClient(ctx, cfg.AI, log)
	if err != nil {
		log.Error("Failed to initialize completion client", "error", err)
		return 1
	}
	prompt := ai.LoadPrompt(cfg.AI.InstructionFile, cfg.AI.Instruction, log)

	histStore := history.NewStore(cfg.History.MaxTurns)
	marketClient := market.NewClient(cfg.Market.BaseURL, cfg.Market.APIKey, cfg.Market.Timeout, log)
	marketCache := market.NewCache()

	hDeps := handlers.HandlerDeps{
		Logger:       log,
		Config:       cfg,
		Store:        store,
		AIClient:     aiClient,
		Prompt:       prompt,
		History:      histStore,
		MarketClient: marketClient,
		MarketCache:  marketCache,
	}
	tDeps := tasks.TaskDeps{
		Logger:       log,
		Store:        store,
		MarketClient: marketClient,
		MarketCache:  marketCache,
		Config:       cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewMessageHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	cfg.Telegram.BotInfo = config.BotInfo{ID: me.ID, Username: me.Username, FirstName: me.FirstName}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, cfg, db, store, aiClient, tg, sched)

	log.Info("Starting bot")
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully")
	time.Sleep(time.Second)
	return 0
}
