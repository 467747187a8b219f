package service

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/uramit/channel-caption-bot/internal/modules/post/domain"
	"github.com/uramit/channel-caption-bot/internal/modules/post/formatter"
	templateService "github.com/uramit/channel-caption-bot/internal/modules/template/service"
	"github.com/uramit/channel-caption-bot/internal/shared/config"
	"github.com/uramit/channel-caption-bot/internal/shared/errors"
)

// Editor performs in-place message edits on the transport.
type Editor interface {
	EditText(ctx context.Context, chatID int64, messageID int, text string, dialect domain.Dialect) error
	EditCaption(ctx context.Context, chatID int64, messageID int, caption string, dialect domain.Dialect) error
}

// Service turns incoming channel posts into edit requests and applies
// them. Each post is processed at most once; failures are logged and
// never retried.
type Service struct {
	cfg       *config.Config
	templates *templateService.Service
	editor    Editor
}

// New creates a new post processor service
func New(cfg *config.Config, templates *templateService.Service) *Service {
	return &Service{
		cfg:       cfg,
		templates: templates,
	}
}

// SetEditor sets the transport used for edits
func (s *Service) SetEditor(editor Editor) {
	s.editor = editor
}

// Handle builds the single edit request for a post. A template store
// failure degrades to "no template configured" and is logged.
func (s *Service) Handle(ctx context.Context, event domain.PostEvent) *domain.EditRequest {
	in := formatter.Input{
		Body:     event.Body(),
		Filename: event.Filename,
	}

	template, err := s.templates.Get(event.ChannelID)
	switch {
	case err == nil:
		in.Template = template.Template
		in.HasTemplate = true
	case stderrors.Is(err, errors.ErrTemplateNotFound):
		// No template configured, identity-only append.
	default:
		slog.Error("Template lookup failed, proceeding without template",
			"error", err, "channel_id", event.ChannelID, "message_id", event.MessageID)
	}

	body := formatter.Render(in, s.cfg.ChannelUsername, s.cfg.Dialect, s.cfg.EscapeBody)

	return &domain.EditRequest{
		ChatID:    event.ChatID,
		MessageID: event.MessageID,
		Kind:      event.Kind(),
		Body:      body,
		Dialect:   s.cfg.Dialect,
	}
}

// Process handles a post event end to end: render the new body and
// issue exactly one edit for the original message.
func (s *Service) Process(ctx context.Context, event domain.PostEvent) error {
	req := s.Handle(ctx, event)

	var err error
	switch req.Kind {
	case domain.EditKindText:
		err = s.editor.EditText(ctx, req.ChatID, req.MessageID, req.Body, req.Dialect)
	case domain.EditKindCaption:
		err = s.editor.EditCaption(ctx, req.ChatID, req.MessageID, req.Body, req.Dialect)
	}
	if err != nil {
		slog.Error("Failed to edit channel post",
			"error", err, "channel_id", event.ChannelID, "message_id", event.MessageID, "kind", req.Kind)
		return oops.With("channel_id", event.ChannelID, "message_id", event.MessageID).Wrap(err)
	}

	slog.Info("Channel post rewritten", "channel_id", event.ChannelID, "message_id", event.MessageID, "kind", req.Kind)
	return nil
}
