package tgbot

import (
	"fmt"
	"log"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lexcor1234/telegram-bot/internal/database"
	"github.com/lexcor1234/telegram-bot/internal/format"
)

const welcomeText = "🎬 *Universal Downloader Bot*\n\n" +
	"Send me a link from YouTube, TikTok, Instagram and more, and I'll help you download it.\n\n" +
	"*Commands:*\n" +
	"/start - Show this message\n" +
	"/help - How to use the bot\n" +
	"/history - Your recent downloads\n\n" +
	"Just paste a link to get started!"

const helpText = "📖 *How to use the bot:*\n\n" +
	"1. Send a video link (YouTube, TikTok, Instagram, etc.)\n" +
	"2. The bot reads the link and shows what it found\n" +
	"3. Pick a format (Video or Audio MP3)\n" +
	"4. Pick a quality\n" +
	"5. Wait for the download and receive the file!\n\n" +
	"*Supported platforms:*\n" +
	"YouTube, TikTok, Instagram, Twitter/X, Facebook, and more..."

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, welcomeText)
	case "help":
		b.reply(msg.Chat.ID, helpText)
	case "history":
		b.sendHistory(msg.Chat.ID, msg.From.ID)
	case "logs":
		b.sendLogs(msg.Chat.ID)
	default:
		log.Printf("ignoring unknown command %q from user %d", msg.Command(), msg.From.ID)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(m); err != nil {
		log.Printf("failed to send reply to chat %d: %v", chatID, err)
	}
}

func (b *Bot) sendHistory(chatID, userID int64) {
	if b.db == nil {
		b.reply(chatID, "History is not enabled on this bot.")
		return
	}

	records, err := database.RecentByUser(b.db, userID, 10)
	if err != nil {
		log.Printf("failed to read history for user %d: %v", userID, err)
		b.reply(chatID, "❌ Couldn't read your history.")
		return
	}
	if len(records) == 0 {
		b.reply(chatID, "No downloads yet. Send a link!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🗂 Your recent downloads:\n\n")
	for _, rec := range records {
		title := rec.Title
		if title == "" {
			title = rec.URL
		}
		sb.WriteString(fmt.Sprintf("%s %s — %s",
			outcomeEmoji(rec.Outcome), format.TruncateTitle(title, captionTitleRunes), rec.Format))
		if rec.Format == "video" {
			sb.WriteString(" " + rec.Quality)
		}
		if rec.SizeBytes > 0 {
			sb.WriteString(", " + format.Size(rec.SizeBytes))
		}
		sb.WriteString("\n")
	}

	m := tgbotapi.NewMessage(chatID, sb.String())
	if _, err := b.api.Send(m); err != nil {
		log.Printf("failed to send history to chat %d: %v", chatID, err)
	}
}

func outcomeEmoji(outcome string) string {
	switch outcome {
	case database.OutcomeDone:
		return "✅"
	case database.OutcomeTooBig:
		return "⚠️"
	default:
		return "❌"
	}
}

// sendLogs ships the bot's log file back to the chat.
func (b *Bot) sendLogs(chatID int64) {
	logFile := b.opts.LogFile
	if logFile == "" {
		logFile = "bot.log"
	}

	fileInfo, err := os.Stat(logFile)
	if err != nil {
		log.Printf("log file unavailable: %v", err)
		b.reply(chatID, "Log file is unavailable.")
		return
	}
	if fileInfo.IsDir() || fileInfo.Size() == 0 {
		b.reply(chatID, "Log file is empty.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(logFile))
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("failed to send log file: %v", err)
		b.reply(chatID, "❌ Couldn't send the log file.")
	}
}
