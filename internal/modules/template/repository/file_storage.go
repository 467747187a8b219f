package repository

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/samber/oops"

	"github.com/uramit/channel-caption-bot/internal/modules/template/domain"
	"github.com/uramit/channel-caption-bot/internal/shared/errors"
	"github.com/uramit/channel-caption-bot/internal/shared/keylock"
)

// FileStorage implements template.Repository using file system.
// Locking is per channel: a write for one channel never blocks
// reads or writes for another.
type FileStorage struct {
	basePath string
	locks    *keylock.KeyedRWMutex
}

// NewFileStorage creates a new file-based template repository
func NewFileStorage(basePath string) (Repository, error) {
	templatePath := filepath.Join(basePath, "templates")
	if err := os.MkdirAll(templatePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create templates directory").Wrap(err)
	}

	return &FileStorage{
		basePath: templatePath,
		locks:    keylock.New(),
	}, nil
}

func (s *FileStorage) SaveTemplate(template *domain.ChannelTemplate) error {
	s.locks.Lock(template.ChannelID)
	defer s.locks.Unlock(template.ChannelID)

	path := filepath.Join(s.basePath, template.ChannelID+".json")
	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return oops.With("channel_id", template.ChannelID, "context", "failed to marshal template").Wrap(err)
	}

	return os.WriteFile(path, data, 0644)
}

func (s *FileStorage) GetTemplate(channelID string) (*domain.ChannelTemplate, error) {
	s.locks.RLock(channelID)
	defer s.locks.RUnlock(channelID)

	path := filepath.Join(s.basePath, channelID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrTemplateNotFound
		}
		return nil, oops.With("channel_id", channelID, "context", "failed to read template").Wrap(err)
	}

	var template domain.ChannelTemplate
	if err := json.Unmarshal(data, &template); err != nil {
		return nil, oops.With("channel_id", channelID, "context", "failed to unmarshal template").Wrap(err)
	}

	return &template, nil
}

func (s *FileStorage) DeleteTemplate(channelID string) error {
	s.locks.Lock(channelID)
	defer s.locks.Unlock(channelID)

	path := filepath.Join(s.basePath, channelID+".json")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return oops.With("channel_id", channelID, "context", "failed to delete template").Wrap(err)
	}
	return nil
}
