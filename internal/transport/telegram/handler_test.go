package telegram_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	broadcastService "github.com/uramit/channel-caption-bot/internal/modules/broadcast/service"
	postDomain "github.com/uramit/channel-caption-bot/internal/modules/post/domain"
	postService "github.com/uramit/channel-caption-bot/internal/modules/post/service"
	subscriberDomain "github.com/uramit/channel-caption-bot/internal/modules/subscriber/domain"
	subscriberRepo "github.com/uramit/channel-caption-bot/internal/modules/subscriber/repository"
	subscriberService "github.com/uramit/channel-caption-bot/internal/modules/subscriber/service"
	templateRepo "github.com/uramit/channel-caption-bot/internal/modules/template/repository"
	templateService "github.com/uramit/channel-caption-bot/internal/modules/template/service"
	"github.com/uramit/channel-caption-bot/internal/shared/config"
	"github.com/uramit/channel-caption-bot/internal/shared/errors"
	"github.com/uramit/channel-caption-bot/internal/transport/telegram"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeTransport struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (f *fakeTransport) SendText(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID, text})
	return nil
}

func (f *fakeTransport) SendStyled(_ context.Context, chatID int64, text string, _ postDomain.Dialect, _ models.ReplyMarkup) error {
	return f.SendText(context.Background(), chatID, text)
}

func (f *fakeTransport) lastTo(chatID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if f.sent[i].chatID == chatID {
			return f.sent[i].text
		}
	}
	return ""
}

// countingSubscriberRepo tracks snapshot reads so tests can assert an
// unauthorized broadcast never touches the store.
type countingSubscriberRepo struct {
	subscriberRepo.Repository
	snapshots atomic.Int32
}

func (c *countingSubscriberRepo) GetAllSubscribers() ([]*subscriberDomain.Subscriber, error) {
	c.snapshots.Add(1)
	return c.Repository.GetAllSubscribers()
}

type fixture struct {
	handler   *telegram.Handler
	transport *fakeTransport
	templates *templateService.Service
	subRepo   *countingSubscriberRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	tRepo, err := templateRepo.NewFileStorage(dir)
	require.NoError(t, err)
	sRepo, err := subscriberRepo.NewFileStorage(dir)
	require.NoError(t, err)
	countingRepo := &countingSubscriberRepo{Repository: sRepo}

	cfg := &config.Config{
		ChannelUsername:      "@MyChannel",
		ChannelChatID:        -100500,
		AdminUserID:          99,
		Dialect:              postDomain.DialectPlain,
		BroadcastConcurrency: 2,
		BroadcastRatePerSec:  1000,
	}

	templates := templateService.New(tRepo)
	subscribers := subscriberService.New(countingRepo)
	posts := postService.New(cfg, templates)
	broadcaster := broadcastService.New(cfg, countingRepo)

	transport := &fakeTransport{}
	handler := telegram.New(cfg, templates, subscribers, broadcaster, posts)
	handler.SetTransport(transport)
	broadcaster.SetSender(transport)

	return &fixture{
		handler:   handler,
		transport: transport,
		templates: templates,
		subRepo:   countingRepo,
	}
}

func privateUpdate(userID, chatID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Chat: models.Chat{ID: chatID, Type: "private"},
			From: &models.User{ID: userID, Username: "someone"},
			Text: text,
		},
	}
}

func TestHandleStart_RegistersSubscriber(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleStart(context.Background(), nil, privateUpdate(42, 42, "/start"))

	subs, err := f.subRepo.GetAllSubscribers()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(42), subs[0].ID)
	assert.Contains(t, f.transport.lastTo(42), "Welcome")
}

func TestHandleSetCaption(t *testing.T) {
	t.Run("admin sets the configured channel template", func(t *testing.T) {
		f := newFixture(t)

		f.handler.HandleSetCaption(context.Background(), nil, privateUpdate(99, 99, "/setcaption {caption} via {filename}"))

		tpl, err := f.templates.Get("-100500")
		require.NoError(t, err)
		assert.Equal(t, "{caption} via {filename}", tpl.Template)
		assert.Contains(t, f.transport.lastTo(99), "updated")
	})

	t.Run("empty argument leaves the store unchanged", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.templates.Set("-100500", "prior", 99))

		f.handler.HandleSetCaption(context.Background(), nil, privateUpdate(99, 99, "/setcaption"))

		tpl, err := f.templates.Get("-100500")
		require.NoError(t, err)
		assert.Equal(t, "prior", tpl.Template)
		assert.Contains(t, f.transport.lastTo(99), "Usage")
	})

	t.Run("longer command token is not treated as setcaption", func(t *testing.T) {
		f := newFixture(t)

		f.handler.HandleSetCaption(context.Background(), nil, privateUpdate(99, 99, "/setcaptionfoo evil"))

		_, err := f.templates.Get("-100500")
		assert.ErrorIs(t, err, errors.ErrTemplateNotFound)
		assert.Contains(t, f.transport.lastTo(99), "Unknown command")
	})

	t.Run("non-admin is denied", func(t *testing.T) {
		f := newFixture(t)

		f.handler.HandleSetCaption(context.Background(), nil, privateUpdate(7, 7, "/setcaption evil"))

		_, err := f.templates.Get("-100500")
		assert.ErrorIs(t, err, errors.ErrTemplateNotFound)
		assert.Contains(t, f.transport.lastTo(7), "administrator")
	})
}

func TestHandleClearCaption_AbsentIsSuccess(t *testing.T) {
	f := newFixture(t)

	f.handler.HandleClearCaption(context.Background(), nil, privateUpdate(99, 99, "/clearcaption"))

	assert.Contains(t, f.transport.lastTo(99), "cleared")
}

func TestHandleBroadcast(t *testing.T) {
	t.Run("non-admin gets a denial and no store reads", func(t *testing.T) {
		f := newFixture(t)

		f.handler.HandleBroadcast(context.Background(), nil, privateUpdate(7, 7, "/broadcast hi"))

		assert.Contains(t, f.transport.lastTo(7), "not allowed")
		assert.Equal(t, int32(0), f.subRepo.snapshots.Load())
	})

	t.Run("longer command token is not treated as broadcast", func(t *testing.T) {
		f := newFixture(t)

		f.handler.HandleBroadcast(context.Background(), nil, privateUpdate(99, 99, "/broadcastx hi"))

		assert.Contains(t, f.transport.lastTo(99), "Unknown command")
		assert.Equal(t, int32(0), f.subRepo.snapshots.Load())
	})

	t.Run("missing text gets guidance", func(t *testing.T) {
		f := newFixture(t)

		f.handler.HandleBroadcast(context.Background(), nil, privateUpdate(99, 99, "/broadcast"))

		assert.Contains(t, f.transport.lastTo(99), "Usage")
		assert.Equal(t, int32(0), f.subRepo.snapshots.Load())
	})

	t.Run("admin broadcast reaches every subscriber", func(t *testing.T) {
		f := newFixture(t)
		subs := subscriberService.New(f.subRepo)
		for _, id := range []int64{1, 2, 3} {
			_, err := subs.Ensure(id, "")
			require.NoError(t, err)
		}

		f.handler.HandleBroadcast(context.Background(), nil, privateUpdate(99, 99, "/broadcast hello all"))

		assert.Contains(t, f.transport.lastTo(99), "scheduled")

		// The job runs asynchronously; wait for the deliveries.
		require.Eventually(t, func() bool {
			return f.transport.lastTo(1) == "hello all" &&
				f.transport.lastTo(2) == "hello all" &&
				f.transport.lastTo(3) == "hello all"
		}, 2*time.Second, 10*time.Millisecond)
	})
}

func TestHandleUpdate_ChannelPostCommands(t *testing.T) {
	t.Run("setcaption inside the channel targets that channel", func(t *testing.T) {
		f := newFixture(t)

		f.handler.HandleUpdate(context.Background(), nil, &models.Update{
			ChannelPost: &models.Message{
				ID:   5,
				Chat: models.Chat{ID: -42, Type: "channel"},
				Text: "/setcaption {caption} — {filename}",
			},
		})

		tpl, err := f.templates.Get("-42")
		require.NoError(t, err)
		assert.Equal(t, "{caption} — {filename}", tpl.Template)
	})

	t.Run("unknown private command gets guidance", func(t *testing.T) {
		f := newFixture(t)

		f.handler.HandleUpdate(context.Background(), nil, privateUpdate(7, 7, "/bogus"))

		assert.Contains(t, f.transport.lastTo(7), "Unknown command")
	})
}
