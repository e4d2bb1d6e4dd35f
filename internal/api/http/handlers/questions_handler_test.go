package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/question-service/internal/api/http"
	"github.com/spec-kit/question-service/internal/api/http/handlers"
	"github.com/spec-kit/question-service/internal/config"
	"github.com/spec-kit/question-service/internal/events"
	"github.com/spec-kit/question-service/internal/faq"
	"github.com/spec-kit/question-service/internal/mail"
	"github.com/spec-kit/question-service/internal/notify"
	"github.com/spec-kit/question-service/internal/observability"
	"github.com/spec-kit/question-service/internal/service"
	"github.com/spec-kit/question-service/internal/store"
	"github.com/spec-kit/question-service/internal/worker"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := zap.NewNop()

	corpus := &faq.Corpus{Entries: []faq.Entry{{
		OriginalQuestion:   "Kako da otvorim racun?",
		NormalizedQuestion: "kako da otvorim racun",
		Category:           "Racuni",
		Answer:             "Racun mozete otvoriti u poslovnici.",
	}}}
	matcher := faq.NewMatcher(corpus, faq.DefaultThreshold)
	questionStore := store.NewQuestionStore(15, 5)
	dispatcher := events.NewInMemoryDispatcher()
	mailer := mail.NewMailer(config.EmailConfig{}, logger) // disabled, drops mail
	broadcaster := notify.NewBroadcaster(logger)
	metrics := observability.NewMetrics()

	intake := service.NewIntakeService(service.IntakeDependencies{
		Store:      questionStore,
		Matcher:    matcher,
		Mailer:     mailer,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	answers := service.NewAnswerService(questionStore, mailer, dispatcher, logger)
	queries := service.NewQueryService(questionStore)
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, broadcaster, mailer, logger))

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler("question-service", "test", corpus, broadcaster, metrics),
		Questions: handlers.NewQuestionsHandler(intake, answers, queries),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s %s: bad JSON body %q", method, path, raw)
		}
	}
	return resp, decoded
}

func validSubmission() map[string]any {
	return map[string]any{
		"name":     "Milica",
		"surname":  "Petrović",
		"phone":    "065123456",
		"email":    "milica@example.com",
		"office":   "Banja Luka",
		"category": "Ostalo/Ne znam",
		"question": "kako da otvorim racun",
	}
}

func TestSubmitQuestion(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/questions/", validSubmission())
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	data, _ := body["data"].(map[string]any)
	if data["matchType"] != "exact" || data["category"] != "Racuni" {
		t.Errorf("data = %v", data)
	}
	if data["id"] == "" || data["id"] == nil {
		t.Error("missing question id")
	}
}

func TestSubmitQuestionValidation(t *testing.T) {
	app := newTestApp(t)

	sub := validSubmission()
	delete(sub, "question")
	delete(sub, "phone")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/questions/", sub)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	errObj, _ := body["error"].(map[string]any)
	if errObj["code"] != "VALIDATION_FAILED" {
		t.Errorf("error = %v", errObj)
	}
}

func TestQuestionViewsAndCounts(t *testing.T) {
	app := newTestApp(t)

	_, created := doJSON(t, app, fiber.MethodPost, "/api/questions/", validSubmission())
	id := created["data"].(map[string]any)["id"].(string)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/questions/", nil)
	if resp.StatusCode != fiber.StatusOK || body["count"].(float64) != 1 {
		t.Errorf("list all: status %d body %v", resp.StatusCode, body)
	}

	_, body = doJSON(t, app, fiber.MethodGet, "/api/questions/new", nil)
	if body["count"].(float64) != 1 {
		t.Errorf("new count = %v", body["count"])
	}

	_, body = doJSON(t, app, fiber.MethodGet, "/api/questions/high-alert", nil)
	if body["count"].(float64) != 0 {
		t.Errorf("high-alert count = %v", body["count"])
	}

	_, body = doJSON(t, app, fiber.MethodGet, "/api/questions/count", nil)
	if body["count"].(float64) != 1 {
		t.Errorf("unanswered count = %v", body["count"])
	}

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/questions/"+id, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get by id: %d", resp.StatusCode)
	}
	question, _ := body["question"].(map[string]any)
	if question["state"] != "NEW" {
		t.Errorf("state = %v", question["state"])
	}

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/questions/does-not-exist", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", resp.StatusCode)
	}
}

func TestMarkAnsweredFlow(t *testing.T) {
	app := newTestApp(t)

	_, created := doJSON(t, app, fiber.MethodPost, "/api/questions/", validSubmission())
	id := created["data"].(map[string]any)["id"].(string)

	resp, body := doJSON(t, app, fiber.MethodPut,
		fmt.Sprintf("/api/questions/%s/mark-answered", id),
		map[string]any{"operatorAnswer": "Odgovor operatera"})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("mark-answered status = %d", resp.StatusCode)
	}
	question, _ := body["question"].(map[string]any)
	if question["isAnswered"] != true || question["operatorAnswer"] != "Odgovor operatera" {
		t.Errorf("question = %v", question)
	}

	_, body = doJSON(t, app, fiber.MethodGet, "/api/questions/answered/count", nil)
	if body["count"].(float64) != 1 {
		t.Errorf("answered count = %v", body["count"])
	}
	_, body = doJSON(t, app, fiber.MethodGet, "/api/questions/count", nil)
	if body["count"].(float64) != 0 {
		t.Errorf("unanswered count = %v", body["count"])
	}

	resp, _ = doJSON(t, app, fiber.MethodPut, "/api/questions/missing/mark-answered",
		map[string]any{"operatorAnswer": "x"})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", resp.StatusCode)
	}
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodGet, "/health/live", nil)
	if resp.StatusCode != fiber.StatusOK || body["status"] != "alive" {
		t.Errorf("live: %d %v", resp.StatusCode, body)
	}

	resp, body = doJSON(t, app, fiber.MethodGet, "/health/ready", nil)
	if resp.StatusCode != fiber.StatusOK || body["status"] != "ready" {
		t.Errorf("ready: %d %v", resp.StatusCode, body)
	}
}
