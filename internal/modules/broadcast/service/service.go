package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	subscriberDomain "github.com/uramit/channel-caption-bot/internal/modules/subscriber/domain"
	subscriberRepo "github.com/uramit/channel-caption-bot/internal/modules/subscriber/repository"
	"github.com/uramit/channel-caption-bot/internal/shared/config"
)

// Sender delivers one message to one chat.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// Report is the final, authoritative result of one broadcast job. It is
// not mutated after Dispatch returns.
type Report struct {
	Attempted int
	Delivered int
	Failed    int
	Duration  time.Duration
}

// Service fans one message out to every known subscriber. Deliveries
// run concurrently up to a configured bound; a failure for one
// subscriber never affects the others and is never retried.
type Service struct {
	cfg         *config.Config
	subscribers subscriberRepo.Repository
	sender      Sender
	limiter     *rate.Limiter
}

// New creates a new broadcast service
func New(cfg *config.Config, subscribers subscriberRepo.Repository) *Service {
	rps := cfg.BroadcastRatePerSec
	if rps <= 0 {
		rps = 25
	}
	return &Service{
		cfg:         cfg,
		subscribers: subscribers,
		limiter:     rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// SetSender sets the delivery transport
func (s *Service) SetSender(sender Sender) {
	s.sender = sender
}

// Dispatch snapshots the subscriber set once and delivers text to each
// member. A started job runs to completion; ctx only gates the rate
// limiter waits.
func (s *Service) Dispatch(ctx context.Context, text string) (*Report, error) {
	subs, err := s.subscribers.GetAllSubscribers()
	if err != nil {
		return nil, oops.With("context", "failed to snapshot subscribers").Wrap(err)
	}

	targets := lo.Map(subs, func(sub *subscriberDomain.Subscriber, _ int) int64 {
		return sub.ID
	})

	start := time.Now()
	report := &Report{Attempted: len(targets)}
	slog.Info("Broadcast job started", "attempted", report.Attempted)

	var mu sync.Mutex
	g := &errgroup.Group{}
	g.SetLimit(s.concurrency())

	for _, chatID := range targets {
		chatID := chatID
		g.Go(func() error {
			if err := s.limiter.Wait(ctx); err != nil {
				s.markFailed(&mu, report, chatID, err)
				return nil
			}
			if err := s.sender.SendText(ctx, chatID, text); err != nil {
				s.markFailed(&mu, report, chatID, err)
				return nil
			}
			mu.Lock()
			report.Delivered++
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	report.Duration = time.Since(start)
	if report.Failed > 0 {
		slog.Warn("Broadcast job finished with failures",
			"attempted", report.Attempted, "delivered", report.Delivered, "failed", report.Failed, "duration", report.Duration)
	} else {
		slog.Info("Broadcast job finished",
			"attempted", report.Attempted, "delivered", report.Delivered, "duration", report.Duration)
	}
	return report, nil
}

func (s *Service) concurrency() int {
	if s.cfg.BroadcastConcurrency > 0 {
		return s.cfg.BroadcastConcurrency
	}
	return 4
}

func (s *Service) markFailed(mu *sync.Mutex, report *Report, chatID int64, err error) {
	slog.Warn("Broadcast delivery failed", "error", err, "chat_id", chatID)
	mu.Lock()
	report.Failed++
	mu.Unlock()
}
