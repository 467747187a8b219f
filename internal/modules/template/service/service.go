package service

import (
	"strings"
	"time"

	"github.com/uramit/channel-caption-bot/internal/modules/template/domain"
	"github.com/uramit/channel-caption-bot/internal/modules/template/repository"
	"github.com/uramit/channel-caption-bot/internal/shared/errors"
)

// Service handles template business logic
type Service struct {
	repo repository.Repository
}

// New creates a new template service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Set writes or overwrites the template for a channel. The text must be
// non-empty after trimming.
func (s *Service) Set(channelID, text string, updatedBy int64) error {
	if strings.TrimSpace(text) == "" {
		return errors.ErrEmptyTemplate
	}

	return s.repo.SaveTemplate(&domain.ChannelTemplate{
		ChannelID: channelID,
		Template:  text,
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now(),
	})
}

// Get retrieves the template for a channel. Absence is reported via
// errors.ErrTemplateNotFound and is a valid, non-error outcome for
// callers that treat it as "no template configured".
func (s *Service) Get(channelID string) (*domain.ChannelTemplate, error) {
	return s.repo.GetTemplate(channelID)
}

// Clear deletes the template for a channel. Clearing an absent template
// is a no-op, not an error.
func (s *Service) Clear(channelID string) error {
	return s.repo.DeleteTemplate(channelID)
}
