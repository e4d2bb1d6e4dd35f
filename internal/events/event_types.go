package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/question-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventQuestionCreated   EventType = "question_created"
	EventQuestionEscalated EventType = "question_escalated"
	EventQuestionAnswered  EventType = "question_answered"
)

// Event represents a domain event emitted by services. Question carries a
// snapshot of the record as of the state transition.
type Event struct {
	ID         string          `json:"id"`
	Type       EventType       `json:"type"`
	QuestionID string          `json:"question_id"`
	Timestamp  time.Time       `json:"timestamp"`
	Question   domain.Question `json:"question"`
}

// NewEvent builds an event around a question snapshot.
func NewEvent(eventType EventType, question domain.Question) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		QuestionID: question.ID,
		Timestamp:  time.Now().UTC(),
		Question:   question,
	}
}
