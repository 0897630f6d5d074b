package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"day-planner/internal/app"
	"day-planner/internal/config"
	"day-planner/internal/metrics"
	"day-planner/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of the Telegram API the bot talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot is the Telegram presentation of the day planner. Each chat is one session.
type Bot struct {
	api    Sender
	parser func(*http.Request) (*tgbotapi.Update, error)
	app    *app.App
	cfg    *config.Config
	now    func() time.Time
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, a *app.App) (*Bot, error) {
	if err := cfg.RequireTelegram(); err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook for %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	b := newBot(api, a, cfg)
	b.parser = api.HandleUpdate
	return b, nil
}

func newBot(api Sender, a *app.App, cfg *config.Config) *Bot {
	return &Bot{api: api, app: a, cfg: cfg, now: time.Now}
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.parser(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}
	go b.HandleUpdate(context.Background(), *update)
}

// HandleUpdate processes one update synchronously.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if !b.allowed(update.CallbackQuery.From) {
			return
		}
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || !b.allowed(update.Message.From) {
		return
	}
	b.processMessage(ctx, update.Message)
}

func (b *Bot) allowed(from *tgbotapi.User) bool {
	if from == nil {
		return false
	}
	if !b.cfg.IsUserAllowed(from.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", from.ID, from.UserName)
		return false
	}
	return true
}

func sessionKey(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	id := sessionKey(chatID)

	switch msg.Command() {
	case "start", "help":
		b.reply(chatID, helpText, nil)
	case "plan":
		b.handlePlan(ctx, chatID, msg.CommandArguments())
	case "invite":
		b.handleInvite(ctx, chatID, msg.CommandArguments())
	case "reset":
		s, err := b.app.ResetFriends(ctx, id)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, "🔄 Friends and preferences cleared.\n"+formatFriends(s), nil)
	case "friends":
		b.handleFriendsToggle(ctx, chatID, msg.CommandArguments())
	case "group":
		b.handleGroup(ctx, chatID)
	case "metrics":
		if msg.From.ID != b.cfg.AdminTelegramID {
			b.reply(chatID, "⛔ *Access Denied*: Admin only.", nil)
			return
		}
		b.handleMetricsCommand(ctx, chatID)
	default:
		b.reply(chatID, helpText, nil)
	}
}

func (b *Bot) handlePlan(ctx context.Context, chatID int64, args string) {
	c, err := ParseCriteria(args)
	if err != nil {
		b.reply(chatID, "❌ "+escape(err.Error())+"\n\n"+helpText, nil)
		return
	}

	id := sessionKey(chatID)
	view, err := b.app.ShowHome(ctx, id, c, nil)
	if errors.Is(err, session.ErrInvalidTransition) {
		// A new search abandons whatever page the chat was on.
		if _, err := b.app.BackToSearch(ctx, id); err != nil {
			_, _ = b.app.GoHome(ctx, id)
		}
		view, err = b.app.ShowHome(ctx, id, c, nil)
	}
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	text, kb := formatHome(view)
	b.reply(chatID, text, kb)
}

func (b *Bot) handleInvite(ctx context.Context, chatID int64, contact string) {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		b.reply(chatID, "Usage: /invite <email or phone>", nil)
		return
	}

	s, added, err := b.app.AddFriend(ctx, sessionKey(chatID), contact)
	if err != nil {
		b.replyError(chatID, err)
		return
	}

	text := formatFriends(s)
	if added {
		text = "📩 Request for preferences sent to " + escape(contact) + "\n\n" + text
	}
	b.reply(chatID, text, nil)
}

func (b *Bot) handleFriendsToggle(ctx context.Context, chatID int64, arg string) {
	var on bool
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "on", "yes", "true":
		on = true
	case "off", "no", "false":
		on = false
	default:
		b.reply(chatID, "Usage: /friends on|off", nil)
		return
	}

	s, err := b.app.SetIncludeFriends(ctx, sessionKey(chatID), on)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	b.reply(chatID, formatFriends(s), nil)
}

func (b *Bot) handleGroup(ctx context.Context, chatID int64) {
	id := sessionKey(chatID)
	// Starting over from an earlier group plan is allowed.
	_, _ = b.app.GoHome(ctx, id)
	if _, err := b.app.ContinueToPreferences(ctx, id); err != nil {
		if errors.Is(err, session.ErrInvalidTransition) {
			b.reply(chatID, "Invite at least one friend with /invite first.", nil)
			return
		}
		b.replyError(chatID, err)
		return
	}

	s, err := b.app.GenerateBestMatch(ctx, id)
	if err != nil {
		b.replyError(chatID, err)
		return
	}
	text, kb := formatBestMatch(s.BestMatch)
	b.reply(chatID, text, kb)
}

func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}

	// Answer callback to remove spinner
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	chatID := query.Message.Chat.ID
	id := sessionKey(chatID)
	action, payload, _ := strings.Cut(query.Data, "|")

	switch action {
	case "book":
		index, err := strconv.Atoi(payload)
		if err != nil {
			log.Printf("Invalid book payload %q", payload)
			return
		}
		if _, err := b.app.Book(ctx, id, index); err != nil {
			b.replyError(chatID, err)
			return
		}
		view, err := b.app.Checkout(ctx, id)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		text, kb := formatCheckout(view, b.now())
		b.reply(chatID, text, kb)

	case "back":
		if _, err := b.app.BackToSearch(ctx, id); err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, "Back to search. Send /plan to look again.", nil)

	case "confirm":
		booking, err := b.app.ConfirmBooking(ctx, id)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		b.reply(chatID, fmt.Sprintf("🎉 %s\nReference: `%s`", escape(booking.Message), booking.Reference), nil)

	case "group":
		booking, err := b.app.ConfirmBestMatch(ctx, id)
		if err != nil {
			b.replyError(chatID, err)
			return
		}
		_, _ = b.app.GoHome(ctx, id)
		b.reply(chatID, fmt.Sprintf("🎉 %s\nReference: `%s`", escape(booking.Message), booking.Reference), nil)

	default:
		log.Printf("Unknown callback action %q", action)
	}
}

func (b *Bot) handleMetricsCommand(ctx context.Context, chatID int64) {
	usage, err := b.app.DailyUsage(ctx, 7)
	if err != nil {
		log.Printf("Error fetching metrics: %v", err)
		b.reply(chatID, "❌ Error fetching metrics.", nil)
		return
	}

	health := metrics.GetSysHealth(b.cfg.DatabasePath)
	b.reply(chatID, formatUsageReport(usage, health), nil)
}

func (b *Bot) replyError(chatID int64, err error) {
	if warning := session.WarningFor(err); warning != "" {
		b.reply(chatID, "⚠️ "+escape(warning), nil)
		return
	}
	log.Printf("Error handling chat %d: %v", chatID, err)
	safeErr := strings.ReplaceAll(err.Error(), "`", "'")
	b.reply(chatID, fmt.Sprintf("❌ *Something went wrong:*\n```\n%v\n```", safeErr), nil)
}

func (b *Bot) reply(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		msg.ReplyMarkup = kb
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}
