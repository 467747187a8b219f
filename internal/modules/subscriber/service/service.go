package service

import (
	stderrors "errors"
	"time"

	"github.com/uramit/channel-caption-bot/internal/modules/subscriber/domain"
	"github.com/uramit/channel-caption-bot/internal/modules/subscriber/repository"
	"github.com/uramit/channel-caption-bot/internal/shared/errors"
)

// Service handles subscriber business logic
type Service struct {
	repo repository.Repository
}

// New creates a new subscriber service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Ensure records a user on first contact. The insert is idempotent:
// an existing record is never overwritten. Returns true when a new
// subscriber was created.
func (s *Service) Ensure(userID int64, displayName string) (bool, error) {
	_, err := s.repo.GetSubscriber(userID)
	if err == nil {
		return false, nil
	}
	if !stderrors.Is(err, errors.ErrSubscriberNotFound) {
		return false, err
	}

	err = s.repo.SaveSubscriber(&domain.Subscriber{
		ID:          userID,
		DisplayName: displayName,
		JoinedAt:    time.Now(),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetAll returns the full subscriber set as it exists right now.
func (s *Service) GetAll() ([]*domain.Subscriber, error) {
	return s.repo.GetAllSubscribers()
}
