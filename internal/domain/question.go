package domain

import "time"

// MatchKind classifies how a suggested answer was produced.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchSimilar MatchKind = "similar"
	MatchManual  MatchKind = "manual"
	MatchNone    MatchKind = "none"
	MatchError   MatchKind = "error"
)

// QuestionState enumerates lifecycle states for questions.
type QuestionState string

const (
	StateNew       QuestionState = "NEW"
	StateHighAlert QuestionState = "HIGH_ALERT"
	StateAnswered  QuestionState = "ANSWERED"
)

// MatchResult is the outcome of matching a question against the FAQ corpus
// or the external classifier. Produced fresh per request.
type MatchResult struct {
	Category        string
	Answer          string
	Kind            MatchKind
	Confidence      float64
	MatchedQuestion string
}

// Submission carries the customer fields of an incoming question.
type Submission struct {
	Name     string
	Surname  string
	Phone    string
	Email    string
	Office   string
	Category string
	Question string
}

// Question is the aggregate for customer questions. Records are owned by the
// question store; everything handed out is a copy.
type Question struct {
	ID              string
	Name            string
	Surname         string
	Phone           string
	Email           string
	Office          string
	Category        string
	Question        string
	SuggestedAnswer string
	MatchKind       MatchKind
	Confidence      float64
	SubmittedAt     time.Time
	IsAnswered      bool
	IsHighAlert     bool
	TimeLeftMinutes int
	AnsweredAt      *time.Time
	OperatorAnswer  string
}

// State derives the lifecycle state from the answered/high-alert flags.
// Answered is terminal; high alert never reverts except by answering.
func (q Question) State() QuestionState {
	switch {
	case q.IsAnswered:
		return StateAnswered
	case q.IsHighAlert:
		return StateHighAlert
	default:
		return StateNew
	}
}
