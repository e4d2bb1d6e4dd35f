package notify

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/question-service/internal/domain"
)

// Frame types pushed to operator clients.
const (
	FrameNewQuestion = "NEW_QUESTION"
	FrameHighAlert   = "HIGH_ALERT"
)

// Sink is a live connection capable of receiving push notifications.
// Send must either deliver the full payload or return an error; a failing
// sink is pruned from the broadcaster.
type Sink interface {
	Send(payload []byte) error
	Close() error
	Target() string
}

type questionPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Category    string    `json:"category"`
	Question    string    `json:"question"`
	TimeLeft    int       `json:"timeLeft"`
	IsHighAlert bool      `json:"isHighAlert"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type frame struct {
	Type      string          `json:"type"`
	Question  questionPayload `json:"question"`
	Timestamp time.Time       `json:"timestamp"`
}

// Broadcaster pushes newline-delimited JSON frames to every registered sink.
// Delivery is best-effort per sink: a failed write removes the sink without
// affecting the others, and nothing ever propagates to the caller.
type Broadcaster struct {
	mu     sync.Mutex
	sinks  []Sink
	logger *zap.Logger
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	return &Broadcaster{logger: logger}
}

// Register adds a sink to the live set.
func (b *Broadcaster) Register(sink Sink) {
	b.mu.Lock()
	b.sinks = append(b.sinks, sink)
	total := len(b.sinks)
	b.mu.Unlock()

	b.logger.Info("notification sink registered",
		zap.String("target", sink.Target()),
		zap.Int("total_sinks", total))
}

// SinkCount reports the current number of live sinks.
func (b *Broadcaster) SinkCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sinks)
}

// Broadcast serializes the question into a frame of the given type and
// attempts delivery to every currently registered sink. Iteration happens
// over a stable snapshot so concurrent registration cannot corrupt the pass;
// sinks that fail the write are pruned and closed afterwards.
func (b *Broadcaster) Broadcast(frameType string, q domain.Question) {
	payload, err := json.Marshal(frame{
		Type: frameType,
		Question: questionPayload{
			ID:          q.ID,
			Name:        q.Name,
			Surname:     q.Surname,
			Category:    q.Category,
			Question:    q.Question,
			TimeLeft:    q.TimeLeftMinutes,
			IsHighAlert: q.IsHighAlert,
			SubmittedAt: q.SubmittedAt,
		},
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		b.logger.Error("failed to serialize notification", zap.Error(err))
		return
	}
	payload = append(payload, '\n')

	b.mu.Lock()
	snapshot := append([]Sink{}, b.sinks...)
	b.mu.Unlock()

	var failed []Sink
	for _, sink := range snapshot {
		if err := sink.Send(payload); err != nil {
			b.logger.Warn("failed to deliver notification, pruning sink",
				zap.String("target", sink.Target()),
				zap.Error(err))
			failed = append(failed, sink)
		}
	}
	if len(failed) > 0 {
		b.prune(failed)
	}

	b.logger.Debug("notification broadcast",
		zap.String("type", frameType),
		zap.String("question_id", q.ID),
		zap.Int("sinks", len(snapshot)-len(failed)))
}

func (b *Broadcaster) prune(dead []Sink) {
	b.mu.Lock()
	kept := b.sinks[:0]
	for _, sink := range b.sinks {
		alive := true
		for _, d := range dead {
			if sink == d {
				alive = false
				break
			}
		}
		if alive {
			kept = append(kept, sink)
		}
	}
	b.sinks = kept
	b.mu.Unlock()

	for _, sink := range dead {
		_ = sink.Close()
	}
}

// Close closes every registered sink and empties the live set.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	sinks := b.sinks
	b.sinks = nil
	b.mu.Unlock()

	for _, sink := range sinks {
		_ = sink.Close()
	}
}
