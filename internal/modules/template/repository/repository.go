package repository

import (
	"github.com/uramit/channel-caption-bot/internal/modules/template/domain"
)

// Repository defines the interface for template persistence
// This abstraction allows easy replacement of storage implementations
// (e.g., FileStorage -> PostgreSQL -> MongoDB)
type Repository interface {
	SaveTemplate(template *domain.ChannelTemplate) error
	GetTemplate(channelID string) (*domain.ChannelTemplate, error)
	DeleteTemplate(channelID string) error
}
