package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/question-service/internal/faq"
	"github.com/spec-kit/question-service/internal/notify"
	"github.com/spec-kit/question-service/internal/observability"
)

// HealthHandler responds to liveness and readiness probes and exposes the
// in-process counters.
type HealthHandler struct {
	serviceName string
	version     string
	corpus      *faq.Corpus
	broadcaster *notify.Broadcaster
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, corpus *faq.Corpus, broadcaster *notify.Broadcaster, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		corpus:      corpus,
		broadcaster: broadcaster,
		metrics:     metrics,
	}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness. The corpus is loaded before the server
// starts, so readiness only confirms the process state and reports sizes.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ready",
		"dependencies": fiber.Map{
			"corpus_questions":   len(h.corpus.Entries),
			"notification_sinks": h.broadcaster.SinkCount(),
		},
	})
}

// Metrics exposes request and error counters.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errors,
	})
}
