package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/question-service/internal/events"
	"github.com/spec-kit/question-service/internal/notify"
)

// NotificationService fans domain events out to the operator notification
// channel and to customer email.
type NotificationService struct {
	dispatcher  events.Dispatcher
	broadcaster *notify.Broadcaster
	mailer      Mailer
	logger      *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, broadcaster *notify.Broadcaster, mailer Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		mailer:      mailer,
		logger:      logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventQuestionCreated, n.handleQuestionCreated)
	n.dispatcher.Subscribe(events.EventQuestionEscalated, n.handleQuestionEscalated)
	n.dispatcher.Subscribe(events.EventQuestionAnswered, n.handleQuestionAnswered)
}

func (n *NotificationService) handleQuestionCreated(ctx context.Context, event events.Event) error {
	n.broadcaster.Broadcast(notify.FrameNewQuestion, event.Question)
	return nil
}

func (n *NotificationService) handleQuestionEscalated(ctx context.Context, event events.Event) error {
	n.broadcaster.Broadcast(notify.FrameHighAlert, event.Question)
	return nil
}

func (n *NotificationService) handleQuestionAnswered(ctx context.Context, event events.Event) error {
	q := event.Question
	if n.mailer == nil || strings.TrimSpace(q.Email) == "" {
		return nil
	}
	if err := n.mailer.SendOperatorAnswerEmail(q.Email, q.Name+" "+q.Surname, q.Question, q.OperatorAnswer); err != nil {
		n.logger.Warn("failed to send operator answer email",
			zap.String("question_id", q.ID), zap.Error(err))
	}
	return nil
}
