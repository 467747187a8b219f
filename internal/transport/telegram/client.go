package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	postDomain "github.com/uramit/channel-caption-bot/internal/modules/post/domain"
)

// Client wraps the Telegram bot API behind the narrow send/edit surface
// the services depend on. A non-success API response surfaces as an
// error on the affected call only, never as anything fatal.
type Client struct {
	bot *bot.Bot
}

// NewClient creates a new transport client
func NewClient(b *bot.Bot) *Client {
	return &Client{bot: b}
}

func parseMode(dialect postDomain.Dialect) models.ParseMode {
	switch dialect {
	case postDomain.DialectMarkdown:
		return models.ParseModeMarkdownV1
	case postDomain.DialectMarkdownV2:
		return models.ParseModeMarkdown
	default:
		return ""
	}
}

// SendText sends a plain text message
func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	return err
}

// SendStyled sends a message rendered in the given dialect, optionally
// with an inline keyboard
func (c *Client) SendStyled(ctx context.Context, chatID int64, text string, dialect postDomain.Dialect, keyboard models.ReplyMarkup) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   parseMode(dialect),
		ReplyMarkup: keyboard,
	})
	return err
}

// EditText replaces the text of an existing message in place
func (c *Client) EditText(ctx context.Context, chatID int64, messageID int, text string, dialect postDomain.Dialect) error {
	_, err := c.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: parseMode(dialect),
	})
	return err
}

// EditCaption replaces the caption of an existing message in place
func (c *Client) EditCaption(ctx context.Context, chatID int64, messageID int, caption string, dialect postDomain.Dialect) error {
	_, err := c.bot.EditMessageCaption(ctx, &bot.EditMessageCaptionParams{
		ChatID:    chatID,
		MessageID: messageID,
		Caption:   caption,
		ParseMode: parseMode(dialect),
	})
	return err
}
