package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/question-service/internal/events"
	"github.com/spec-kit/question-service/internal/store"
)

// EscalationService runs the SLA countdown: a fixed-period sweep over all
// unanswered questions that recomputes remaining time and flips questions
// into high alert.
type EscalationService struct {
	store      *store.QuestionStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	interval   time.Duration
}

// NewEscalationService constructs the scheduler component.
func NewEscalationService(questionStore *store.QuestionStore, dispatcher events.Dispatcher, logger *zap.Logger, interval time.Duration) *EscalationService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &EscalationService{
		store:      questionStore,
		dispatcher: dispatcher,
		logger:     logger,
		interval:   interval,
	}
}

// Run drives the sweep on its fixed period until the context is cancelled.
// A fault inside one sweep is logged and the loop keeps its schedule.
func (s *EscalationService) Run(ctx context.Context) {
	s.logger.Info("escalation loop started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("escalation loop stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *EscalationService) tick(ctx context.Context, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("escalation sweep panicked", zap.Any("panic", r))
		}
	}()

	result := s.store.Sweep(now)

	for _, q := range result.Expired {
		s.logger.Error("question expired before being answered",
			zap.String("question_id", q.ID),
			zap.Time("submitted_at", q.SubmittedAt))
	}

	for _, q := range result.Escalated {
		s.logger.Warn("question moved to high alert",
			zap.String("question_id", q.ID),
			zap.Int("time_left_minutes", q.TimeLeftMinutes))
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventQuestionEscalated, q))
	}

	s.logger.Debug("escalation sweep complete",
		zap.Int("scanned", result.Scanned),
		zap.Int("escalated", len(result.Escalated)))
}
