package store

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/question-service/internal/domain"
	"github.com/spec-kit/question-service/internal/faq"
)

// QuestionStore is the exclusive owner of all question records for the
// process lifetime. Records are mutated in place under the store lock; every
// read hands out copies, so callers never observe a partially written record
// and never hold a mutable reference.
type QuestionStore struct {
	mu               sync.RWMutex
	byID             map[string]*domain.Question
	windowMinutes    int
	highAlertMinutes int
}

// SweepResult reports the outcome of a scheduler sweep. The slices hold
// snapshots taken at flip time.
type SweepResult struct {
	Escalated []domain.Question
	Expired   []domain.Question
	Scanned   int
}

// NewQuestionStore constructs an empty store with the given SLA window and
// high-alert boundary, both in minutes.
func NewQuestionStore(windowMinutes, highAlertMinutes int) *QuestionStore {
	return &QuestionStore{
		byID:             make(map[string]*domain.Question),
		windowMinutes:    windowMinutes,
		highAlertMinutes: highAlertMinutes,
	}
}

// Create builds a question from a submission and match result and inserts it
// atomically. When matching failed outright the submission's own category is
// kept, falling back to "Unknown".
func (s *QuestionStore) Create(sub domain.Submission, match domain.MatchResult) domain.Question {
	category := match.Category
	if match.Kind == domain.MatchError {
		category = sub.Category
	}
	if category == "" {
		category = faq.UnknownCategory
	}

	q := &domain.Question{
		ID:              uuid.NewString(),
		Name:            sub.Name,
		Surname:         sub.Surname,
		Phone:           sub.Phone,
		Email:           sub.Email,
		Office:          sub.Office,
		Category:        category,
		Question:        sub.Question,
		SuggestedAnswer: match.Answer,
		MatchKind:       match.Kind,
		Confidence:      match.Confidence,
		SubmittedAt:     time.Now().UTC(),
		TimeLeftMinutes: s.windowMinutes,
	}

	s.mu.Lock()
	s.byID[q.ID] = q
	s.mu.Unlock()

	return *q
}

// Get returns a copy of the question with the given id.
func (s *QuestionStore) Get(id string) (domain.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.byID[id]
	if !ok {
		return domain.Question{}, false
	}
	return *q, true
}

// ListAll returns every question, newest submission first.
func (s *QuestionStore) ListAll() []domain.Question {
	list := s.snapshot(func(q *domain.Question) bool { return true })
	sort.Slice(list, func(i, j int) bool {
		return list[i].SubmittedAt.After(list[j].SubmittedAt)
	})
	return list
}

// ListNew returns unanswered questions not yet on high alert, oldest first.
func (s *QuestionStore) ListNew() []domain.Question {
	list := s.snapshot(func(q *domain.Question) bool {
		return !q.IsAnswered && !q.IsHighAlert
	})
	sortBySubmittedAsc(list)
	return list
}

// ListHighAlert returns unanswered questions on high alert, oldest first.
func (s *QuestionStore) ListHighAlert() []domain.Question {
	list := s.snapshot(func(q *domain.Question) bool {
		return !q.IsAnswered && q.IsHighAlert
	})
	sortBySubmittedAsc(list)
	return list
}

// ListAnswered returns answered questions, most recently answered first.
func (s *QuestionStore) ListAnswered() []domain.Question {
	list := s.snapshot(func(q *domain.Question) bool { return q.IsAnswered })
	sort.Slice(list, func(i, j int) bool {
		ti, tj := list[i].AnsweredAt, list[j].AnsweredAt
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})
	return list
}

// CountUnanswered returns the number of open questions.
func (s *QuestionStore) CountUnanswered() int {
	return s.count(func(q *domain.Question) bool { return !q.IsAnswered })
}

// CountAnswered returns the number of answered questions.
func (s *QuestionStore) CountAnswered() int {
	return s.count(func(q *domain.Question) bool { return q.IsAnswered })
}

// MarkAnswered records the operator answer and flips the question into its
// terminal state. Calling it again on an answered question overwrites the
// answer and timestamp; the answered flag itself never reverts, so the
// question can never re-enter escalation scanning.
func (s *QuestionStore) MarkAnswered(id, operatorAnswer string) (domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.byID[id]
	if !ok {
		return domain.Question{}, false
	}
	now := time.Now().UTC()
	q.IsAnswered = true
	q.AnsweredAt = &now
	q.OperatorAnswer = operatorAnswer
	return *q, true
}

// Sweep recomputes remaining SLA time for every unanswered question as of
// now, flipping questions whose remaining time has reached the high-alert
// boundary. Answered questions are never touched. Elapsed minutes round up,
// so a question is already one minute into the window the moment the first
// second passes.
func (s *QuestionStore) Sweep(now time.Time) SweepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result SweepResult
	for _, q := range s.byID {
		if q.IsAnswered {
			continue
		}
		result.Scanned++

		elapsed := int(math.Ceil(now.Sub(q.SubmittedAt).Minutes()))
		left := s.windowMinutes - elapsed
		if left < 0 {
			left = 0
		}
		q.TimeLeftMinutes = left

		if left <= s.highAlertMinutes && !q.IsHighAlert {
			q.IsHighAlert = true
			result.Escalated = append(result.Escalated, *q)
		}

		// Unreachable while the alert boundary is positive; guards the
		// window fully elapsing without the flag ever being set.
		if left <= 0 && !q.IsHighAlert {
			q.IsHighAlert = true
			result.Expired = append(result.Expired, *q)
		}
	}
	return result
}

func (s *QuestionStore) snapshot(keep func(*domain.Question) bool) []domain.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]domain.Question, 0, len(s.byID))
	for _, q := range s.byID {
		if keep(q) {
			list = append(list, *q)
		}
	}
	return list
}

func (s *QuestionStore) count(keep func(*domain.Question) bool) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, q := range s.byID {
		if keep(q) {
			n++
		}
	}
	return n
}

func sortBySubmittedAsc(list []domain.Question) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].SubmittedAt.Before(list[j].SubmittedAt)
	})
}
