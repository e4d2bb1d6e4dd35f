package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/question-service/internal/domain"
	"github.com/spec-kit/question-service/internal/events"
	"github.com/spec-kit/question-service/internal/faq"
	"github.com/spec-kit/question-service/internal/store"
)

// SentinelCategory is the "other/unknown" choice on the submission form.
// Submissions carrying it go to the classifier or matcher without a
// category hint.
const SentinelCategory = "Ostalo/Ne znam"

// Mailer is the outbound email capability consumed by services. All sends
// are best-effort; callers log failures and move on.
type Mailer interface {
	SendAnswerEmail(to, customerName, question, answer string) error
	SendConfirmationEmail(to, customerName, question string) error
	SendOperatorAnswerEmail(to, customerName, question, answer string) error
}

// IntakeService turns customer submissions into stored questions.
type IntakeService struct {
	store      *store.QuestionStore
	matcher    *faq.Matcher
	classifier QuestionClassifier
	mailer     Mailer
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// IntakeDependencies bundles collaborators for the intake service.
// Classifier may be nil, in which case the local matcher answers directly.
type IntakeDependencies struct {
	Store      *store.QuestionStore
	Matcher    *faq.Matcher
	Classifier QuestionClassifier
	Mailer     Mailer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		store:      deps.Store,
		matcher:    deps.Matcher,
		classifier: deps.Classifier,
		mailer:     deps.Mailer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Submit matches the submission, stores the resulting question, sends the
// customer email when an address was given and publishes the created event.
// Matching misses and classifier failures still produce a stored question;
// email and notification problems never surface to the submitter.
func (s *IntakeService) Submit(ctx context.Context, sub domain.Submission) (domain.Question, error) {
	hint := sub.Category
	if hint == SentinelCategory {
		hint = ""
	}

	var match domain.MatchResult
	if s.classifier != nil {
		match = s.classifier.Process(ctx, sub.Question, hint)
	} else {
		match = s.matcher.Classify(sub.Question, hint)
	}

	q := s.store.Create(sub, match)

	s.logger.Info("question received",
		zap.String("question_id", q.ID),
		zap.String("customer", q.Name+" "+q.Surname),
		zap.String("category", q.Category),
		zap.String("match_kind", string(q.MatchKind)),
		zap.Float64("confidence", q.Confidence))

	s.sendCustomerEmail(q, match)

	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventQuestionCreated, q))

	return q, nil
}

func (s *IntakeService) sendCustomerEmail(q domain.Question, match domain.MatchResult) {
	if s.mailer == nil || strings.TrimSpace(q.Email) == "" {
		return
	}
	customer := q.Name + " " + q.Surname

	var err error
	if hasUsableAnswer(match) {
		err = s.mailer.SendAnswerEmail(q.Email, customer, q.Question, q.SuggestedAnswer)
	} else {
		err = s.mailer.SendConfirmationEmail(q.Email, customer, q.Question)
	}
	if err != nil {
		s.logger.Warn("failed to send customer email, continuing",
			zap.String("question_id", q.ID),
			zap.Error(err))
	}
}

// hasUsableAnswer reports whether matching produced an answer worth mailing
// out: manual, none and error results only carry operator-review sentinels.
func hasUsableAnswer(match domain.MatchResult) bool {
	switch match.Kind {
	case domain.MatchExact, domain.MatchSimilar:
		return match.Confidence > 0
	default:
		return false
	}
}
