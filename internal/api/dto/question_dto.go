package dto

import (
	"time"

	"github.com/spec-kit/question-service/internal/domain"
)

// SubmitQuestionRequest payload.
type SubmitQuestionRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Office   string `json:"office"`
	Category string `json:"category"`
	Question string `json:"question"`
}

// MarkAnsweredRequest payload.
type MarkAnsweredRequest struct {
	OperatorAnswer string `json:"operatorAnswer"`
}

// SubmitQuestionResult is the intake response body.
type SubmitQuestionResult struct {
	ID              string  `json:"id"`
	Category        string  `json:"category"`
	SuggestedAnswer string  `json:"suggestedAnswer"`
	MatchType       string  `json:"matchType"`
	Confidence      float64 `json:"confidence"`
	EmailSent       bool    `json:"emailSent"`
}

// QuestionResponse is the full question projection for operator views.
type QuestionResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Surname         string     `json:"surname"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Office          string     `json:"office"`
	Category        string     `json:"category"`
	Question        string     `json:"question"`
	SuggestedAnswer string     `json:"suggestedAnswer"`
	MatchType       string     `json:"matchType"`
	Confidence      float64    `json:"confidence"`
	SubmittedAt     time.Time  `json:"submittedAt"`
	IsAnswered      bool       `json:"isAnswered"`
	IsHighAlert     bool       `json:"isHighAlert"`
	TimeLeftMinutes int        `json:"timeLeftMinutes"`
	State           string     `json:"state"`
	AnsweredAt      *time.Time `json:"answeredAt,omitempty"`
	OperatorAnswer  string     `json:"operatorAnswer,omitempty"`
}

// NewQuestionResponse maps a domain question onto the response shape.
func NewQuestionResponse(q domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:              q.ID,
		Name:            q.Name,
		Surname:         q.Surname,
		Phone:           q.Phone,
		Email:           q.Email,
		Office:          q.Office,
		Category:        q.Category,
		Question:        q.Question,
		SuggestedAnswer: q.SuggestedAnswer,
		MatchType:       string(q.MatchKind),
		Confidence:      q.Confidence,
		SubmittedAt:     q.SubmittedAt,
		IsAnswered:      q.IsAnswered,
		IsHighAlert:     q.IsHighAlert,
		TimeLeftMinutes: q.TimeLeftMinutes,
		State:           string(q.State()),
		AnsweredAt:      q.AnsweredAt,
		OperatorAnswer:  q.OperatorAnswer,
	}
}

// NewQuestionResponses maps a list of questions.
func NewQuestionResponses(questions []domain.Question) []QuestionResponse {
	items := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		items = append(items, NewQuestionResponse(q))
	}
	return items
}
