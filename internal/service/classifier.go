package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/spec-kit/question-service/internal/config"
	"github.com/spec-kit/question-service/internal/domain"
	"github.com/spec-kit/question-service/internal/faq"
)

// QuestionClassifier produces a match result for a submitted question.
// Implementations must never fail intake: any transport or service problem
// is expressed as a MatchError result.
type QuestionClassifier interface {
	Process(ctx context.Context, question, category string) domain.MatchResult
}

// ClassifierClient calls the external AI classification service over HTTP.
type ClassifierClient struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

type classifierRequest struct {
	Question string  `json:"question"`
	Category *string `json:"category,omitempty"`
}

type classifierResponse struct {
	Success    bool    `json:"success"`
	Category   string  `json:"category"`
	Answer     string  `json:"answer"`
	MatchType  string  `json:"match_type"`
	Confidence float64 `json:"confidence"`
}

// NewClassifierClient constructs the client with the configured timeout.
func NewClassifierClient(cfg config.ClassifierConfig, logger *zap.Logger) *ClassifierClient {
	return &ClassifierClient{
		url:    cfg.URL,
		client: &http.Client{Timeout: cfg.Timeout()},
		logger: logger,
	}
}

// Process sends the question (and the category hint, when non-empty) to the
// classifier. Every failure path yields an error-kind result with a fixed
// answer text so the caller can still build a usable question record.
func (c *ClassifierClient) Process(ctx context.Context, question, category string) domain.MatchResult {
	reqBody := classifierRequest{Question: question}
	if category != "" {
		reqBody.Category = &category
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		c.logger.Error("failed to encode classifier request", zap.Error(err))
		return errorResult("An error occurred while processing your question.")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("failed to build classifier request", zap.Error(err))
		return errorResult("An error occurred while processing your question.")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("classifier unreachable", zap.String("url", c.url), zap.Error(err))
		return errorResult("AI service is not available. Please try again later.")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("classifier returned unexpected status", zap.Int("status", resp.StatusCode))
		return errorResult("Failed to get answer from AI model.")
	}

	var result classifierResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("failed to decode classifier response", zap.Error(err))
		return errorResult("Failed to process question.")
	}
	if !result.Success {
		c.logger.Error("classifier reported failure")
		return errorResult("Failed to process question.")
	}

	c.logger.Info("classifier processed question",
		zap.String("category", result.Category),
		zap.String("match_type", result.MatchType),
		zap.Float64("confidence", result.Confidence))

	return domain.MatchResult{
		Category:   result.Category,
		Answer:     result.Answer,
		Kind:       domain.MatchKind(result.MatchType),
		Confidence: result.Confidence,
	}
}

func errorResult(answer string) domain.MatchResult {
	return domain.MatchResult{
		Category:   faq.UnknownCategory,
		Answer:     answer,
		Kind:       domain.MatchError,
		Confidence: 0.0,
	}
}
