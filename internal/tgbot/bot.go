// Package tgbot drives the per-user interaction flow: link in, format
// and quality picked over inline keyboards, file out, everything cleaned
// up afterwards.
package tgbot

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/semaphore"

	"github.com/lexcor1234/telegram-bot/internal/session"
	"github.com/lexcor1234/telegram-bot/internal/ytdl"
)

// sender is the slice of the Bot API client the handlers need. Tests
// swap in a fake.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// fetcher is the extraction adapter seen from the handlers.
type fetcher interface {
	Probe(ctx context.Context, url string) (*ytdl.Metadata, error)
	Fetch(ctx context.Context, url string, meta *ytdl.Metadata, format ytdl.Format, quality string) (string, error)
}

// Options are the knobs the handlers consult per turn. MaxFileBytes and
// ChatAllowed are funcs so live config reloads take effect immediately.
type Options struct {
	MaxFileBytes func() int64
	ChatAllowed  func(chatID int64) bool
	LogFile      string
}

type Bot struct {
	api    sender
	client *tgbotapi.BotAPI
	dl     fetcher
	store  session.Store
	db     *sql.DB
	sem    *semaphore.Weighted
	opts   Options
}

// New authorizes against the Bot API and wires the handlers together.
// db may be nil when history is disabled.
func New(token string, dl *ytdl.Client, store session.Store, db *sql.DB, maxConcurrent int64, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log.Printf("Authorized on account @%s", api.Self.UserName)

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Bot{
		api:    api,
		client: api,
		dl:     dl,
		store:  store,
		db:     db,
		sem:    semaphore.NewWeighted(maxConcurrent),
		opts:   opts,
	}, nil
}

// Run polls for updates until ctx is cancelled. Every update gets its
// own goroutine; the blocking probe/fetch work inside is bounded by the
// semaphore, so the poll loop itself never waits on yt-dlp.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.client.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.client.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go func(update tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("recovered from panic in update handler: %v", r)
					}
				}()
				b.handleUpdate(ctx, update)
			}(update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		msg := update.Message
		if msg.From == nil {
			return
		}
		if !b.chatAllowed(msg.Chat.ID) {
			log.Printf("unauthorized chat %d (@%s)", msg.Chat.ID, msg.From.UserName)
			return
		}
		if msg.IsCommand() {
			b.handleCommand(msg)
			return
		}
		if url, ok := ytdl.ExtractURL(msg.Text); ok {
			b.handleURL(ctx, msg.Chat.ID, msg.From.ID, url)
		}

	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.From == nil || cb.Message == nil {
			return
		}
		if !b.chatAllowed(cb.Message.Chat.ID) {
			log.Printf("unauthorized chat %d (@%s)", cb.Message.Chat.ID, cb.From.UserName)
			return
		}
		b.handleCallback(ctx, cb)
	}
}

func (b *Bot) chatAllowed(chatID int64) bool {
	if b.opts.ChatAllowed == nil {
		return true
	}
	return b.opts.ChatAllowed(chatID)
}

func (b *Bot) maxFileBytes() int64 {
	if b.opts.MaxFileBytes == nil {
		return 50 * 1024 * 1024
	}
	return b.opts.MaxFileBytes()
}
