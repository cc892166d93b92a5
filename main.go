package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lexcor1234/telegram-bot/internal/config"
	"github.com/lexcor1234/telegram-bot/internal/database"
	"github.com/lexcor1234/telegram-bot/internal/session"
	"github.com/lexcor1234/telegram-bot/internal/tgbot"
	"github.com/lexcor1234/telegram-bot/internal/ytdl"
)

const historyRetention = 90 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}))

	if _, err := exec.LookPath("yt-dlp"); err != nil {
		log.Printf("yt-dlp not found in PATH, downloads will fail until it is installed: %v", err)
	}
	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		log.Fatalf("Failed to create download directory: %v", err)
	}

	db, err := database.InitDB(cfg.HistoryPath)
	if err != nil {
		log.Printf("Download history disabled: %v", err)
		db = nil
	} else {
		defer db.Close()
		if err := database.PruneOlderThan(db, historyRetention); err != nil {
			log.Printf("Failed to prune download history: %v", err)
		}
	}

	bot, err := tgbot.New(
		cfg.BotToken,
		&ytdl.Client{Dir: cfg.DownloadDir},
		session.NewMemoryStore(),
		db,
		cfg.MaxConcurrent,
		tgbot.Options{
			MaxFileBytes: config.MaxFileBytes,
			ChatAllowed:  config.ChatAllowed,
			LogFile:      cfg.LogFile,
		},
	)
	if err != nil {
		log.Fatalf("Failed to start bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("Bot started. Press Ctrl+C to stop.")
	bot.Run(ctx)
	log.Println("Bot stopped.")
}
