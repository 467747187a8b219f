package di

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/samber/do/v2"
	"github.com/samber/oops"

	broadcastService "github.com/uramit/channel-caption-bot/internal/modules/broadcast/service"
	postService "github.com/uramit/channel-caption-bot/internal/modules/post/service"
	subscriberRepo "github.com/uramit/channel-caption-bot/internal/modules/subscriber/repository"
	subscriberService "github.com/uramit/channel-caption-bot/internal/modules/subscriber/service"
	templateRepo "github.com/uramit/channel-caption-bot/internal/modules/template/repository"
	templateService "github.com/uramit/channel-caption-bot/internal/modules/template/service"
	"github.com/uramit/channel-caption-bot/internal/shared/config"
	httpServer "github.com/uramit/channel-caption-bot/internal/transport/http"
	telegramHandler "github.com/uramit/channel-caption-bot/internal/transport/telegram"
)

// Service names for dependency injection
const (
	ServiceConfig            = "config"
	ServiceTemplateRepo      = "template-repository"
	ServiceSubscriberRepo    = "subscriber-repository"
	ServiceTemplateService   = "template-service"
	ServiceSubscriberService = "subscriber-service"
	ServicePostService       = "post-service"
	ServiceBroadcastService  = "broadcast-service"
	ServiceTelegramHandler   = "telegram-handler"
	ServiceHTTPServer        = "http-server"
	ServiceBot               = "bot"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Template Repository
	do.Provide(injector, func(i do.Injector) (templateRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := templateRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize template repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Subscriber Repository
	do.Provide(injector, func(i do.Injector) (subscriberRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := subscriberRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize subscriber repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Template Service
	do.Provide(injector, func(i do.Injector) (*templateService.Service, error) {
		repo := do.MustInvoke[templateRepo.Repository](i)
		return templateService.New(repo), nil
	})

	// Register Subscriber Service
	do.Provide(injector, func(i do.Injector) (*subscriberService.Service, error) {
		repo := do.MustInvoke[subscriberRepo.Repository](i)
		return subscriberService.New(repo), nil
	})

	// Register Post Service
	do.Provide(injector, func(i do.Injector) (*postService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		templates := do.MustInvoke[*templateService.Service](i)
		return postService.New(cfg, templates), nil
	})

	// Register Broadcast Service
	do.Provide(injector, func(i do.Injector) (*broadcastService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[subscriberRepo.Repository](i)
		return broadcastService.New(cfg, repo), nil
	})

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		templates := do.MustInvoke[*templateService.Service](i)
		subscribers := do.MustInvoke[*subscriberService.Service](i)
		broadcaster := do.MustInvoke[*broadcastService.Service](i)
		posts := do.MustInvoke[*postService.Service](i)
		return telegramHandler.New(cfg, templates, subscribers, broadcaster, posts), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		server := httpServer.New(cfg)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		handler := do.MustInvoke[*telegramHandler.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(handler.HandleUpdate),
		}
		if cfg.WebhookSecret != "" {
			opts = append(opts, bot.WithWebhookSecretToken(cfg.WebhookSecret))
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		// Register bot commands
		handler.RegisterCommands(b)

		// Wire the transport into the services that need it
		client := telegramHandler.NewClient(b)
		handler.SetTransport(client)
		do.MustInvoke[*postService.Service](i).SetEditor(client)
		do.MustInvoke[*broadcastService.Service](i).SetSender(client)

		return b, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx := context.Background()

	// Shutdown bot if it exists
	if b, err := do.Invoke[*bot.Bot](injector); err == nil && b != nil {
		b.Close(ctx)
	}

	return nil
}
