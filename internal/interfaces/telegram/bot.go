// Package telegram is the operator command surface. Each command is thin
// glue over one application service; the bot holds no business logic.
package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/application/alerting"
	"github.com/vanshgehlot9/nikkifashionbot/internal/application/forecast"
	"github.com/vanshgehlot9/nikkifashionbot/internal/application/orderops"
	"github.com/vanshgehlot9/nikkifashionbot/internal/application/reconcile"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/order"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/shared"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/support"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/config"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/jsonstore"
)

// Deps collects the services the bot dispatches to.
type Deps struct {
	Store         order.Store
	Reconciler    *reconcile.Service
	Alerts        *alerting.Engine
	Forecast      *forecast.Predictor
	OrderOps      *orderops.Service
	Tickets       support.TicketStore
	Notifications *jsonstore.NotificationStore
	Zones         shared.ZoneTable
	Currency      shared.CurrencyTable
}

// Bot runs the long-polling update loop and dispatches operator commands.
type Bot struct {
	api     *tgbotapi.BotAPI
	cfg     config.TelegramConfig
	domain  string
	deps    Deps
	allowed map[int64]bool
	logger  *zap.Logger
}

// New connects to the Telegram Bot API and builds the command router.
func New(cfg config.TelegramConfig, customDomain string, deps Deps, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: connect: %w", err)
	}
	api.Debug = cfg.Debug

	var allowed map[int64]bool
	if len(cfg.AllowedChatIDs) > 0 {
		allowed = make(map[int64]bool, len(cfg.AllowedChatIDs))
		for _, id := range cfg.AllowedChatIDs {
			allowed[id] = true
		}
	}

	return &Bot{
		api:     api,
		cfg:     cfg,
		domain:  customDomain,
		deps:    deps,
		allowed: allowed,
		logger:  logger.Named("telegram"),
	}, nil
}

// Run consumes updates until the context ends. Commands execute to
// completion before the next update for the same chat is handled; the
// update loop itself is the only concurrency.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("Bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate routes one inbound update.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}
	chatID := msg.Chat.ID
	if b.allowed != nil && !b.allowed[chatID] {
		b.logger.Warn("Message from unauthorized chat", zap.Int64("chat_id", chatID))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Command handler panicked", zap.Any("panic", r))
			b.reply(chatID, "❌ Something went wrong.")
		}
	}()

	if !msg.IsCommand() {
		// Bare text is treated as a SKU lookup.
		b.handleSKU(ctx, chatID, msg.Text)
		return
	}

	args := splitArgs(msg.CommandArguments())
	switch msg.Command() {
	case "start":
		b.handleStart(chatID)
	case "help":
		b.reply(chatID, commandsText)
	case "privacy":
		b.reply(chatID, privacyPolicy)
	case "sku":
		b.handleSKUCommand(ctx, chatID, args)
	case "setstock":
		b.handleSetStock(ctx, chatID, args)
	case "return":
		b.handleReturn(ctx, chatID, args)
	case "reconcile":
		b.handleReconcile(ctx, chatID)
	case "reprocess":
		b.handleReprocess(ctx, chatID, args)
	case "setalert":
		b.handleSetAlert(chatID, args)
	case "lowstock":
		b.handleLowStock(ctx, chatID)
	case "autorestock":
		b.handleAutoRestock(chatID, args)
	case "predict":
		b.handlePredict(ctx, chatID, args)
	case "zone":
		b.handleZone(chatID, args)
	case "ticket":
		b.handleTicket(chatID, args)
	case "notifyme":
		b.handleNotifyMe(chatID)
	case "report":
		b.handleReport(ctx, chatID)
	case "reschedule":
		b.handleReschedule(ctx, chatID, args)
	case "partner":
		b.handlePartner(ctx, chatID, args)
	case "hold":
		b.handleHold(ctx, chatID, args)
	case "schedule":
		b.handleSchedule(ctx, chatID, args)
	case "notify":
		b.handleNotify(ctx, chatID, args)
	case "history":
		b.handleHistory(ctx, chatID, args)
	default:
		b.reply(chatID, "❌ Unknown command. Use /help.")
	}
}

// reply sends a plain text message to a chat, logging send failures.
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// replyMarkdown sends a Markdown-formatted message to a chat.
func (b *Bot) replyMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// Broadcast sends a message to every subscribed chat.
func (b *Bot) Broadcast(text string) {
	for _, chatID := range b.deps.Notifications.Subscribers() {
		b.reply(chatID, text)
	}
}

// RunReportBroadcasts periodically sends the operator summary to every
// subscribed chat. A non-positive interval disables broadcasting.
func (b *Bot) RunReportBroadcasts(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if len(b.deps.Notifications.Subscribers()) == 0 {
				continue
			}
			b.Broadcast(b.reportText(ctx))
		}
	}
}
