package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without BOT_TOKEN")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BotToken != "123:abc" {
		t.Errorf("BotToken = %q", cfg.BotToken)
	}
	if cfg.DownloadDir != "downloads" {
		t.Errorf("DownloadDir = %q, expected default", cfg.DownloadDir)
	}
	if cfg.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, expected default 2", cfg.MaxConcurrent)
	}
	if MaxFileBytes() != 50*1024*1024 {
		t.Errorf("MaxFileBytes() = %d, expected 50 MiB", MaxFileBytes())
	}
}

func TestChatAllowed(t *testing.T) {
	t.Cleanup(func() { viper.Set("allowed_chats", []int{}) })

	viper.Set("allowed_chats", []int{})
	if !ChatAllowed(42) {
		t.Error("empty allowed_chats should leave the bot open")
	}

	viper.Set("allowed_chats", []int{100, 200})
	if !ChatAllowed(200) {
		t.Error("listed chat rejected")
	}
	if ChatAllowed(42) {
		t.Error("unlisted chat allowed")
	}
}
