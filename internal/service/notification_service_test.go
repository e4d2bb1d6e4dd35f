package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/question-service/internal/domain"
	"github.com/spec-kit/question-service/internal/events"
	"github.com/spec-kit/question-service/internal/notify"
)

type captureSink struct {
	payloads [][]byte
}

func (c *captureSink) Send(p []byte) error {
	c.payloads = append(c.payloads, append([]byte{}, p...))
	return nil
}
func (c *captureSink) Close() error   { return nil }
func (c *captureSink) Target() string { return "capture" }

func notificationFixture() (events.Dispatcher, *captureSink, *fakeMailer) {
	dispatcher := events.NewInMemoryDispatcher()
	broadcaster := notify.NewBroadcaster(zap.NewNop())
	sink := &captureSink{}
	broadcaster.Register(sink)
	mailer := &fakeMailer{}

	NewNotificationService(dispatcher, broadcaster, mailer, zap.NewNop()).RegisterHandlers()
	return dispatcher, sink, mailer
}

func notificationQuestion() domain.Question {
	return domain.Question{
		ID: "q-7", Name: "Ana", Surname: "Anić", Email: "ana@example.com",
		Category: "Kartice", Question: "pitanje", OperatorAnswer: "odgovor",
		TimeLeftMinutes: 4, IsHighAlert: true, SubmittedAt: time.Now().UTC(),
	}
}

func frameType(t *testing.T, payload []byte) string {
	t.Helper()
	var frame struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("bad frame: %v", err)
	}
	return frame.Type
}

func TestCreatedEventBroadcastsNewQuestion(t *testing.T) {
	dispatcher, sink, _ := notificationFixture()

	_ = dispatcher.Publish(context.Background(), events.NewEvent(events.EventQuestionCreated, notificationQuestion()))

	if len(sink.payloads) != 1 {
		t.Fatalf("broadcasts = %d, want 1", len(sink.payloads))
	}
	if got := frameType(t, sink.payloads[0]); got != notify.FrameNewQuestion {
		t.Errorf("frame type = %q, want %q", got, notify.FrameNewQuestion)
	}
}

func TestEscalatedEventBroadcastsHighAlert(t *testing.T) {
	dispatcher, sink, _ := notificationFixture()

	_ = dispatcher.Publish(context.Background(), events.NewEvent(events.EventQuestionEscalated, notificationQuestion()))

	if len(sink.payloads) != 1 {
		t.Fatalf("broadcasts = %d, want 1", len(sink.payloads))
	}
	if got := frameType(t, sink.payloads[0]); got != notify.FrameHighAlert {
		t.Errorf("frame type = %q, want %q", got, notify.FrameHighAlert)
	}
}

func TestAnsweredEventSendsOperatorEmail(t *testing.T) {
	dispatcher, sink, mailer := notificationFixture()

	_ = dispatcher.Publish(context.Background(), events.NewEvent(events.EventQuestionAnswered, notificationQuestion()))

	if len(mailer.operatorTo) != 1 || mailer.operatorTo[0] != "ana@example.com" {
		t.Errorf("operator emails = %v", mailer.operatorTo)
	}
	if len(sink.payloads) != 0 {
		t.Errorf("answered events must not broadcast, got %d frames", len(sink.payloads))
	}
}

func TestAnsweredEventWithoutEmail(t *testing.T) {
	dispatcher, _, mailer := notificationFixture()

	q := notificationQuestion()
	q.Email = "  "
	_ = dispatcher.Publish(context.Background(), events.NewEvent(events.EventQuestionAnswered, q))

	if len(mailer.operatorTo) != 0 {
		t.Errorf("no email expected, got %v", mailer.operatorTo)
	}
}
