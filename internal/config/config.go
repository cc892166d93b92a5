// Package config loads the bot's settings: the token from the process
// environment (startup aborts without it) and tunables from an optional
// config.yaml with sane defaults. The file is watched, so allowed chats
// and the size ceiling can change without a restart.
package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var mu sync.RWMutex

const (
	defaultDownloadDir   = "downloads"
	defaultMaxFileSizeMB = 50
	defaultMaxConcurrent = 2
	defaultHistoryPath   = "bot.db"
	defaultLogFile       = "bot.log"
)

// Config carries the values fixed for the process lifetime. Settings
// that may change under WatchConfig are read through the accessors.
type Config struct {
	BotToken      string
	DownloadDir   string
	HistoryPath   string
	LogFile       string
	MaxConcurrent int64
}

// Load reads .env, applies defaults, picks up config.yaml when present
// and validates the token. The only fatal condition is a missing token.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading configuration from the environment")
	}

	mu.Lock()
	viper.SetDefault("download_dir", defaultDownloadDir)
	viper.SetDefault("max_file_size_mb", defaultMaxFileSizeMB)
	viper.SetDefault("max_concurrent_downloads", defaultMaxConcurrent)
	viper.SetDefault("history_path", defaultHistoryPath)
	viper.SetDefault("log_file", defaultLogFile)
	viper.SetDefault("allowed_chats", []int{})

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			mu.Unlock()
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		viper.WatchConfig()
	}
	mu.Unlock()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	mu.RLock()
	defer mu.RUnlock()
	return &Config{
		BotToken:      token,
		DownloadDir:   viper.GetString("download_dir"),
		HistoryPath:   viper.GetString("history_path"),
		LogFile:       viper.GetString("log_file"),
		MaxConcurrent: viper.GetInt64("max_concurrent_downloads"),
	}, nil
}

// MaxFileBytes is the upload ceiling in bytes.
func MaxFileBytes() int64 {
	mu.RLock()
	defer mu.RUnlock()
	return viper.GetInt64("max_file_size_mb") * 1024 * 1024
}

// ChatAllowed reports whether a chat may use the restricted commands.
// An empty allowed_chats list leaves the bot open to everyone.
func ChatAllowed(chatID int64) bool {
	mu.RLock()
	allowedChats := viper.GetIntSlice("allowed_chats")
	mu.RUnlock()

	if len(allowedChats) == 0 {
		return true
	}
	for _, chat := range allowedChats {
		if int64(chat) == chatID {
			return true
		}
	}
	return false
}
