package tgbot

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lexcor1234/telegram-bot/internal/database"
	"github.com/lexcor1234/telegram-bot/internal/format"
	"github.com/lexcor1234/telegram-bot/internal/session"
	"github.com/lexcor1234/telegram-bot/internal/ytdl"
)

const (
	analyzingText      = "🔍 Analyzing link..."
	probeFailedText    = "❌ Couldn't read that link. Check it and try again."
	sessionExpiredText = "❌ Session expired. Send the link again."
	chooseQualityText  = "🎬 Video selected\n\nChoose a quality:"
	downloadingText    = "⏳ Downloading... Please wait."
	uploadingText      = "📤 Uploading file..."
	doneText           = "✅ Download finished! Send another link to continue."
	sendFailedText     = "❌ Couldn't send the file."
)

const (
	infoTitleRunes    = 100
	captionTitleRunes = 50
	errorTextRunes    = 100
)

// handleURL runs the probe turn: status message, metadata query, info
// card with the format keyboard. A failed probe leaves no session behind.
func (b *Bot) handleURL(ctx context.Context, chatID, userID int64, url string) {
	status, err := b.api.Send(tgbotapi.NewMessage(chatID, analyzingText))
	if err != nil {
		log.Printf("failed to send status message to chat %d: %v", chatID, err)
		return
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return
	}
	info, err := b.dl.Probe(ctx, url)
	b.sem.Release(1)
	if err != nil {
		log.Printf("probe failed for %s: %v", url, err)
		b.editText(chatID, status.MessageID, probeFailedText, nil)
		return
	}

	// A fresh link replaces whatever request the user had in flight.
	b.store.Put(userID, session.New(url, info))

	uploader := info.Uploader
	if uploader == "" {
		uploader = "unknown"
	}
	infoText := fmt.Sprintf(
		"📹 %s\n\n👤 Channel: %s\n⏱ Duration: %s\n\nChoose a download format:",
		format.TruncateTitle(info.Title, infoTitleRunes),
		uploader,
		format.Duration(int(info.Duration)),
	)
	markup := formatKeyboard()

	if info.Thumbnail != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(info.Thumbnail))
		photo.Caption = infoText
		photo.ReplyMarkup = markup
		if _, err := b.api.Send(photo); err == nil {
			if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, status.MessageID)); err != nil {
				log.Printf("failed to delete status message: %v", err)
			}
			return
		}
		log.Printf("thumbnail card failed for %s, falling back to text", url)
	}
	b.editText(chatID, status.MessageID, infoText, &markup)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	userID := cb.From.ID

	switch {
	case strings.HasPrefix(cb.Data, "format_"):
		b.handleFormatChoice(ctx, chatID, messageID, userID, strings.TrimPrefix(cb.Data, "format_"))
	case strings.HasPrefix(cb.Data, "quality_"):
		b.handleQualityChoice(ctx, chatID, messageID, userID, strings.TrimPrefix(cb.Data, "quality_"))
	default:
		log.Printf("unknown callback payload: %s", cb.Data)
	}
}

func (b *Bot) handleFormatChoice(ctx context.Context, chatID int64, messageID int, userID int64, choice string) {
	sess, ok := b.store.Get(userID)
	if !ok {
		b.editCaptionOrText(chatID, messageID, sessionExpiredText, nil)
		return
	}

	var f ytdl.Format
	switch choice {
	case "video":
		f = ytdl.FormatVideo
	case "audio":
		f = ytdl.FormatAudio
	default:
		log.Printf("unknown format choice %q from user %d", choice, userID)
		return
	}

	if err := sess.ChooseFormat(f); err != nil {
		log.Printf("rejected format choice from user %d: %v", userID, err)
		return
	}

	if f == ytdl.FormatVideo {
		markup := qualityKeyboard()
		b.editCaptionOrText(chatID, messageID, chooseQualityText, &markup)
		return
	}
	// Audio needs no quality choice.
	b.startDownload(ctx, chatID, messageID, userID, sess)
}

func (b *Bot) handleQualityChoice(ctx context.Context, chatID int64, messageID int, userID int64, choice string) {
	sess, ok := b.store.Get(userID)
	if !ok {
		b.editCaptionOrText(chatID, messageID, sessionExpiredText, nil)
		return
	}

	switch choice {
	case ytdl.QualityBest, "1080", "720", "480":
	default:
		log.Printf("unknown quality choice %q from user %d", choice, userID)
		return
	}

	if err := sess.ChooseQuality(choice); err != nil {
		log.Printf("rejected quality choice from user %d: %v", userID, err)
		return
	}
	b.startDownload(ctx, chatID, messageID, userID, sess)
}

// startDownload runs the one fetch attempt a session gets. Whatever the
// outcome, the session is deleted, the artifact's attempt directory is
// removed and the attempt lands in the history.
func (b *Bot) startDownload(ctx context.Context, chatID int64, messageID int, userID int64, sess *session.Session) {
	b.editCaptionOrText(chatID, messageID, downloadingText, nil)

	if err := b.sem.Acquire(ctx, 1); err != nil {
		b.store.Delete(userID)
		return
	}
	path, err := b.dl.Fetch(ctx, sess.URL, sess.Info, sess.Format, sess.Quality)
	b.sem.Release(1)

	rec := database.Record{
		UserID:  userID,
		URL:     sess.URL,
		Format:  string(sess.Format),
		Quality: sess.Quality,
		Outcome: database.OutcomeError,
	}
	if sess.Info != nil {
		rec.Title = format.TruncateTitle(sess.Info.Title, infoTitleRunes)
	}

	defer func() {
		b.store.Delete(userID)
		if path != "" {
			if err := os.RemoveAll(filepath.Dir(path)); err != nil {
				log.Printf("failed to remove artifact %s: %v", path, err)
			}
		}
		b.recordHistory(rec)
	}()

	if err != nil {
		log.Printf("download failed for %s: %v", sess.URL, err)
		b.editCaptionOrText(chatID, messageID, "❌ Download failed: "+format.TruncateTitle(err.Error(), errorTextRunes), nil)
		return
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		log.Printf("downloaded file vanished: %v", err)
		b.editCaptionOrText(chatID, messageID, "❌ Download failed: "+format.TruncateTitle(err.Error(), errorTextRunes), nil)
		return
	}
	rec.SizeBytes = fileInfo.Size()

	if limit := b.maxFileBytes(); fileInfo.Size() > limit {
		rec.Outcome = database.OutcomeTooBig
		b.editCaptionOrText(chatID, messageID, fmt.Sprintf(
			"⚠️ The file is too big (%s).\nTelegram only allows bot uploads up to %s.\nTry a lower quality.",
			format.Size(fileInfo.Size()), format.Size(limit)), nil)
		return
	}

	b.editCaptionOrText(chatID, messageID, uploadingText, nil)

	caption := format.TruncateTitle(rec.Title, captionTitleRunes)
	var upload tgbotapi.Chattable
	if sess.Format == ytdl.FormatAudio {
		audio := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(path))
		audio.Title = caption
		audio.Caption = "🎵 " + caption
		upload = audio
	} else {
		video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
		video.Caption = "🎬 " + caption
		video.SupportsStreaming = true
		upload = video
	}

	if _, err := b.api.Send(upload); err != nil {
		log.Printf("upload to chat %d failed: %v", chatID, err)
		b.editCaptionOrText(chatID, messageID, sendFailedText, nil)
		return
	}
	rec.Outcome = database.OutcomeDone

	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		log.Printf("failed to delete status message: %v", err)
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, doneText)); err != nil {
		log.Printf("failed to send completion message: %v", err)
	}
}

func (b *Bot) recordHistory(rec database.Record) {
	if b.db == nil {
		return
	}
	if err := database.RecordDownload(b.db, rec); err != nil {
		log.Printf("failed to record download history: %v", err)
	}
}

// editCaptionOrText updates the status message whatever shape it has:
// a caption edit is attempted first (the info card may be a photo), then
// a plain text edit, then the failure is only logged.
func (b *Bot) editCaptionOrText(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	caption := tgbotapi.NewEditMessageCaption(chatID, messageID, text)
	caption.ReplyMarkup = markup
	if _, err := b.api.Send(caption); err == nil {
		return
	}
	b.editText(chatID, messageID, text, markup)
}

func (b *Bot) editText(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = markup
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("failed to edit message %d in chat %d: %v", messageID, chatID, err)
	}
}

func formatKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎬 Video", "format_video"),
			tgbotapi.NewInlineKeyboardButtonData("🎵 Audio MP3", "format_audio"),
		),
	)
}

func qualityKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🏆 Best quality", "quality_best")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📺 1080p Full HD", "quality_1080")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📺 720p HD", "quality_720")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📺 480p SD", "quality_480")),
	)
}
