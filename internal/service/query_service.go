package service

import (
	"github.com/spec-kit/question-service/internal/domain"
	"github.com/spec-kit/question-service/internal/store"
	apperrors "github.com/spec-kit/question-service/pkg/util"
)

// QueryService exposes the read-only views over the question store.
type QueryService struct {
	store *store.QuestionStore
}

// NewQueryService constructs the service.
func NewQueryService(questionStore *store.QuestionStore) *QueryService {
	return &QueryService{store: questionStore}
}

// All returns every question, newest first.
func (s *QueryService) All() []domain.Question {
	return s.store.ListAll()
}

// New returns open questions not yet on high alert, oldest first.
func (s *QueryService) New() []domain.Question {
	return s.store.ListNew()
}

// HighAlert returns open questions on high alert, oldest first.
func (s *QueryService) HighAlert() []domain.Question {
	return s.store.ListHighAlert()
}

// Answered returns answered questions, most recently answered first.
func (s *QueryService) Answered() []domain.Question {
	return s.store.ListAnswered()
}

// UnansweredCount returns the number of open questions.
func (s *QueryService) UnansweredCount() int {
	return s.store.CountUnanswered()
}

// AnsweredCount returns the number of answered questions.
func (s *QueryService) AnsweredCount() int {
	return s.store.CountAnswered()
}

// ByID returns one question or a not-found error.
func (s *QueryService) ByID(id string) (domain.Question, error) {
	q, ok := s.store.Get(id)
	if !ok {
		return domain.Question{}, apperrors.NewNotFound("question", map[string]any{"id": id})
	}
	return q, nil
}
