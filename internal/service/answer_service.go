package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/question-service/internal/domain"
	"github.com/spec-kit/question-service/internal/events"
	"github.com/spec-kit/question-service/internal/store"
	apperrors "github.com/spec-kit/question-service/pkg/util"
)

// AnswerService covers the operator surface: marking questions answered and
// re-sending the operator answer by email.
type AnswerService struct {
	store      *store.QuestionStore
	mailer     Mailer
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAnswerService constructs the service.
func NewAnswerService(questionStore *store.QuestionStore, mailer Mailer, dispatcher events.Dispatcher, logger *zap.Logger) *AnswerService {
	return &AnswerService{
		store:      questionStore,
		mailer:     mailer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// MarkAnswered records the operator answer and publishes the answered event.
// Unknown ids map to a not-found error; no existing question is touched.
func (s *AnswerService) MarkAnswered(ctx context.Context, id, operatorAnswer string) (domain.Question, error) {
	q, ok := s.store.MarkAnswered(id, operatorAnswer)
	if !ok {
		s.logger.Warn("mark-answered for unknown question", zap.String("question_id", id))
		return domain.Question{}, apperrors.NewNotFound("question", map[string]any{"id": id})
	}

	s.logger.Info("question marked as answered", zap.String("question_id", id))

	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventQuestionAnswered, q))
	return q, nil
}

// ResendAnswer sends the operator answer email again for an already
// answered question.
func (s *AnswerService) ResendAnswer(ctx context.Context, id string) (domain.Question, error) {
	q, ok := s.store.Get(id)
	if !ok {
		return domain.Question{}, apperrors.NewNotFound("question", map[string]any{"id": id})
	}
	if !q.IsAnswered {
		return domain.Question{}, apperrors.NewValidationError("question has no operator answer yet", nil)
	}
	if strings.TrimSpace(q.Email) == "" {
		return domain.Question{}, apperrors.NewValidationError("question has no customer email", nil)
	}

	if err := s.mailer.SendOperatorAnswerEmail(q.Email, q.Name+" "+q.Surname, q.Question, q.OperatorAnswer); err != nil {
		s.logger.Warn("failed to resend operator answer email",
			zap.String("question_id", id), zap.Error(err))
	}
	return q, nil
}
