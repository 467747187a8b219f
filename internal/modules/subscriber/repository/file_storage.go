package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/uramit/channel-caption-bot/internal/modules/subscriber/domain"
	"github.com/uramit/channel-caption-bot/internal/shared/errors"
	"github.com/uramit/channel-caption-bot/internal/shared/keylock"
)

// FileStorage implements subscriber.Repository using file system.
// Locking is per subscriber: a write for one user never blocks
// reads or writes for another.
type FileStorage struct {
	basePath string
	locks    *keylock.KeyedRWMutex
}

// NewFileStorage creates a new file-based subscriber repository
func NewFileStorage(basePath string) (Repository, error) {
	subscriberPath := filepath.Join(basePath, "subscribers")
	if err := os.MkdirAll(subscriberPath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create subscribers directory").Wrap(err)
	}

	return &FileStorage{
		basePath: subscriberPath,
		locks:    keylock.New(),
	}, nil
}

func key(userID int64) string {
	return fmt.Sprintf("%d", userID)
}

func (s *FileStorage) SaveSubscriber(subscriber *domain.Subscriber) error {
	k := key(subscriber.ID)
	s.locks.Lock(k)
	defer s.locks.Unlock(k)

	path := filepath.Join(s.basePath, k+".json")
	data, err := json.MarshalIndent(subscriber, "", "  ")
	if err != nil {
		return oops.With("user_id", subscriber.ID, "context", "failed to marshal subscriber").Wrap(err)
	}

	return os.WriteFile(path, data, 0644)
}

func (s *FileStorage) GetSubscriber(userID int64) (*domain.Subscriber, error) {
	k := key(userID)
	s.locks.RLock(k)
	defer s.locks.RUnlock(k)

	path := filepath.Join(s.basePath, k+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrSubscriberNotFound
		}
		return nil, oops.With("user_id", userID, "context", "failed to read subscriber").Wrap(err)
	}

	var subscriber domain.Subscriber
	if err := json.Unmarshal(data, &subscriber); err != nil {
		return nil, oops.With("user_id", userID, "context", "failed to unmarshal subscriber").Wrap(err)
	}

	return &subscriber, nil
}

func (s *FileStorage) GetAllSubscribers() ([]*domain.Subscriber, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, oops.With("directory", s.basePath, "context", "failed to read subscribers directory").Wrap(err)
	}

	subscribers := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*domain.Subscriber, bool) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			return nil, false
		}

		k := strings.TrimSuffix(entry.Name(), ".json")
		s.locks.RLock(k)
		defer s.locks.RUnlock(k)

		path := filepath.Join(s.basePath, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, false
		}

		var subscriber domain.Subscriber
		if err := json.Unmarshal(data, &subscriber); err != nil {
			return nil, false
		}

		return &subscriber, true
	})

	return subscribers, nil
}
