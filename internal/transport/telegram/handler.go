package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	broadcastService "github.com/uramit/channel-caption-bot/internal/modules/broadcast/service"
	postDomain "github.com/uramit/channel-caption-bot/internal/modules/post/domain"
	postService "github.com/uramit/channel-caption-bot/internal/modules/post/service"
	subscriberService "github.com/uramit/channel-caption-bot/internal/modules/subscriber/service"
	templateService "github.com/uramit/channel-caption-bot/internal/modules/template/service"
	"github.com/uramit/channel-caption-bot/internal/shared/config"
)

// Transport is the outbound surface the handler replies through.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendStyled(ctx context.Context, chatID int64, text string, dialect postDomain.Dialect, keyboard models.ReplyMarkup) error
}

// Handler routes inbound Telegram updates: administrative commands to
// the stores and dispatcher, channel posts to the post processor.
type Handler struct {
	cfg         *config.Config
	templates   *templateService.Service
	subscribers *subscriberService.Service
	broadcaster *broadcastService.Service
	posts       *postService.Service
	transport   Transport
}

// New creates a new Telegram handler
func New(
	cfg *config.Config,
	templates *templateService.Service,
	subscribers *subscriberService.Service,
	broadcaster *broadcastService.Service,
	posts *postService.Service,
) *Handler {
	return &Handler{
		cfg:         cfg,
		templates:   templates,
		subscribers: subscribers,
		broadcaster: broadcaster,
		posts:       posts,
	}
}

// SetTransport sets the outbound transport
func (h *Handler) SetTransport(t Transport) {
	h.transport = t
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/setcaption", bot.MatchTypePrefix, h.HandleSetCaption)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/clearcaption", bot.MatchTypeExact, h.HandleClearCaption)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/broadcast", bot.MatchTypePrefix, h.HandleBroadcast)
}

// HandleUpdate processes updates not matched by a registered command:
// channel posts and unrecognized private messages.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.ChannelPost != nil {
		h.processChannelPost(ctx, update.ChannelPost)
		return
	}
	if update.Message == nil {
		return
	}
	if update.Message.Chat.Type == "channel" {
		h.processChannelPost(ctx, update.Message)
		return
	}
	if update.Message.Chat.Type == "private" && strings.HasPrefix(update.Message.Text, "/") {
		h.reply(ctx, update.Message.Chat.ID, h.usageText())
	}
}

func (h *Handler) processChannelPost(ctx context.Context, msg *models.Message) {
	if msg == nil {
		return
	}

	// Template commands issued inside the channel are by definition
	// admin-issued for that channel; they never get captioned.
	if cmd, args := splitCommand(msg.Text); cmd != "" {
		channelID := fmt.Sprintf("%d", msg.Chat.ID)
		switch cmd {
		case "/setcaption":
			h.setTemplate(ctx, msg.Chat.ID, channelID, args, 0)
			return
		case "/clearcaption":
			h.clearTemplate(ctx, msg.Chat.ID, channelID)
			return
		}
	}

	event := postDomain.PostEvent{
		ChannelID: fmt.Sprintf("%d", msg.Chat.ID),
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      msg.Text,
		Caption:   msg.Caption,
	}
	if msg.Document != nil {
		event.Filename = msg.Document.FileName
		event.HasMedia = true
	}
	if len(msg.Photo) > 0 || msg.Video != nil || msg.Audio != nil {
		event.HasMedia = true
	}

	if event.Text == "" && event.Caption == "" && !event.HasMedia {
		return
	}

	// Failures are logged inside Process; each post is handled at most once.
	_ = h.posts.Process(ctx, event)
}

// HandleStart records the sender as a subscriber and replies with the
// welcome message.
func (h *Handler) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if _, err := h.subscribers.Ensure(msg.From.ID, displayName(msg.From)); err != nil {
		slog.Error("Failed to save subscriber", "error", err, "user_id", msg.From.ID)
		h.reply(ctx, msg.Chat.ID, "❌ Something went wrong, please try /start again later.")
		return
	}

	text := "Welcome! I add the channel identity to every new post in the channel.\n\n" +
		"Admin commands:\n" +
		"/setcaption <template> - set the caption template\n" +
		"/clearcaption - remove the caption template\n" +
		"/broadcast <text> - message every subscriber"

	var keyboard models.ReplyMarkup
	if h.cfg.DeveloperURL != "" {
		keyboard = &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{{
				{Text: "Developer 🤖", URL: h.cfg.DeveloperURL},
			}},
		}
	}

	if err := h.transport.SendStyled(ctx, msg.Chat.ID, text, postDomain.DialectPlain, keyboard); err != nil {
		slog.Error("Failed to send welcome message", "error", err, "chat_id", msg.Chat.ID)
	}
}

// HandleSetCaption handles /setcaption issued in a private chat. Only
// the configured administrator may target the configured channel.
func (h *Handler) HandleSetCaption(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	// Prefix registration also matches /setcaptionfoo; only the exact
	// command token counts.
	cmd, args := splitCommand(msg.Text)
	if cmd != "/setcaption" {
		h.reply(ctx, msg.Chat.ID, h.usageText())
		return
	}

	if !h.isAdmin(msg.From.ID) || h.cfg.ChannelChatID == 0 {
		h.reply(ctx, msg.Chat.ID, "❌ Only the channel administrator can change the caption template.")
		return
	}

	h.setTemplate(ctx, msg.Chat.ID, fmt.Sprintf("%d", h.cfg.ChannelChatID), args, msg.From.ID)
}

// HandleClearCaption handles /clearcaption issued in a private chat.
func (h *Handler) HandleClearCaption(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if !h.isAdmin(msg.From.ID) || h.cfg.ChannelChatID == 0 {
		h.reply(ctx, msg.Chat.ID, "❌ Only the channel administrator can change the caption template.")
		return
	}

	h.clearTemplate(ctx, msg.Chat.ID, fmt.Sprintf("%d", h.cfg.ChannelChatID))
}

// HandleBroadcast schedules a fan-out of the argument text to every
// subscriber. The reply confirms scheduling, not completion.
func (h *Handler) HandleBroadcast(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	// Prefix registration also matches /broadcastx; only the exact
	// command token counts.
	cmd, args := splitCommand(msg.Text)
	if cmd != "/broadcast" {
		h.reply(ctx, msg.Chat.ID, h.usageText())
		return
	}

	if !h.isAdmin(msg.From.ID) {
		h.reply(ctx, msg.Chat.ID, "❌ You are not allowed to broadcast.")
		return
	}

	if args == "" {
		h.reply(ctx, msg.Chat.ID, "Usage: /broadcast <text>")
		return
	}

	// A started job runs to completion regardless of this update's
	// lifecycle.
	jobCtx := context.WithoutCancel(ctx)
	go func() {
		if _, err := h.broadcaster.Dispatch(jobCtx, args); err != nil {
			slog.Error("Broadcast dispatch failed", "error", err)
		}
	}()

	h.reply(ctx, msg.Chat.ID, "📣 Broadcast scheduled.")
}

func (h *Handler) setTemplate(ctx context.Context, replyTo int64, channelID, text string, updatedBy int64) {
	if strings.TrimSpace(text) == "" {
		h.reply(ctx, replyTo, "Usage: /setcaption <template>\nPlaceholders: {caption}, {filename}")
		return
	}

	if err := h.templates.Set(channelID, text, updatedBy); err != nil {
		slog.Error("Failed to save template", "error", err, "channel_id", channelID)
		h.reply(ctx, replyTo, "❌ Failed to save the caption template.")
		return
	}

	h.reply(ctx, replyTo, "✅ Caption template updated.")
	h.mirrorToOps(ctx, fmt.Sprintf("Caption template for channel %s updated.", channelID))
}

func (h *Handler) clearTemplate(ctx context.Context, replyTo int64, channelID string) {
	if err := h.templates.Clear(channelID); err != nil {
		slog.Error("Failed to clear template", "error", err, "channel_id", channelID)
		h.reply(ctx, replyTo, "❌ Failed to clear the caption template.")
		return
	}

	h.reply(ctx, replyTo, "✅ Caption template cleared.")
	h.mirrorToOps(ctx, fmt.Sprintf("Caption template for channel %s cleared.", channelID))
}

func (h *Handler) mirrorToOps(ctx context.Context, text string) {
	if h.cfg.OpsChatID == 0 {
		return
	}
	if err := h.transport.SendText(ctx, h.cfg.OpsChatID, text); err != nil {
		slog.Error("Failed to mirror confirmation to ops chat", "error", err, "chat_id", h.cfg.OpsChatID)
	}
}

func (h *Handler) isAdmin(userID int64) bool {
	return h.cfg.AdminUserID != 0 && userID == h.cfg.AdminUserID
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.transport.SendText(ctx, chatID, text); err != nil {
		slog.Error("Failed to send reply", "error", err, "chat_id", chatID)
	}
}

func (h *Handler) usageText() string {
	return "Unknown command.\n\n" +
		"/start - subscribe to broadcasts\n" +
		"/setcaption <template> - set the caption template\n" +
		"/clearcaption - remove the caption template\n" +
		"/broadcast <text> - message every subscriber"
}

// splitCommand splits a message into its leading /command and the
// remainder after the first whitespace run. Non-commands return "".
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i:])
}

func displayName(user *models.User) string {
	if user.Username != "" {
		return "@" + user.Username
	}
	return user.FirstName
}
