package repository

import (
	"github.com/uramit/channel-caption-bot/internal/modules/subscriber/domain"
)

// Repository defines the interface for subscriber data persistence
type Repository interface {
	SaveSubscriber(subscriber *domain.Subscriber) error
	GetSubscriber(userID int64) (*domain.Subscriber, error)
	GetAllSubscribers() ([]*domain.Subscriber, error)
}
