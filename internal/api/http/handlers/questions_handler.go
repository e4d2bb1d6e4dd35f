package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/question-service/internal/api/dto"
	"github.com/spec-kit/question-service/internal/domain"
	"github.com/spec-kit/question-service/internal/service"
	apperrors "github.com/spec-kit/question-service/pkg/util"
)

// QuestionsHandler exposes the question intake and operator query surface.
type QuestionsHandler struct {
	intake  *service.IntakeService
	answers *service.AnswerService
	queries *service.QueryService
}

// NewQuestionsHandler constructs handler.
func NewQuestionsHandler(intake *service.IntakeService, answers *service.AnswerService, queries *service.QueryService) *QuestionsHandler {
	return &QuestionsHandler{intake: intake, answers: answers, queries: queries}
}

// Submit POST /api/questions.
func (h *QuestionsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	missing := map[string]any{}
	for field, value := range map[string]string{
		"name":     req.Name,
		"surname":  req.Surname,
		"phone":    req.Phone,
		"office":   req.Office,
		"category": req.Category,
		"question": req.Question,
	} {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", missing)
	}

	q, err := h.intake.Submit(c.UserContext(), domain.Submission{
		Name:     req.Name,
		Surname:  req.Surname,
		Phone:    req.Phone,
		Email:    req.Email,
		Office:   req.Office,
		Category: req.Category,
		Question: req.Question,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": dto.SubmitQuestionResult{
			ID:              q.ID,
			Category:        q.Category,
			SuggestedAnswer: q.SuggestedAnswer,
			MatchType:       string(q.MatchKind),
			Confidence:      q.Confidence,
			EmailSent:       strings.TrimSpace(q.Email) != "",
		},
		"message": "Vaš zahtjev je uspješno primljen i biće obrađen u najkraćem roku.",
	})
}

// List GET /api/questions.
func (h *QuestionsHandler) List(c *fiber.Ctx) error {
	return listResponse(c, h.queries.All())
}

// ListNew GET /api/questions/new.
func (h *QuestionsHandler) ListNew(c *fiber.Ctx) error {
	return listResponse(c, h.queries.New())
}

// ListHighAlert GET /api/questions/high-alert.
func (h *QuestionsHandler) ListHighAlert(c *fiber.Ctx) error {
	return listResponse(c, h.queries.HighAlert())
}

// ListAnswered GET /api/questions/answered.
func (h *QuestionsHandler) ListAnswered(c *fiber.Ctx) error {
	return listResponse(c, h.queries.Answered())
}

// CountUnanswered GET /api/questions/count.
func (h *QuestionsHandler) CountUnanswered(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "count": h.queries.UnansweredCount()})
}

// CountAnswered GET /api/questions/answered/count.
func (h *QuestionsHandler) CountAnswered(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "count": h.queries.AnsweredCount()})
}

// Get GET /api/questions/:id.
func (h *QuestionsHandler) Get(c *fiber.Ctx) error {
	q, err := h.queries.ByID(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "question": dto.NewQuestionResponse(q)})
}

// MarkAnswered PUT /api/questions/:id/mark-answered.
func (h *QuestionsHandler) MarkAnswered(c *fiber.Ctx) error {
	var req dto.MarkAnsweredRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.OperatorAnswer) == "" {
		return apperrors.NewValidationError("operatorAnswer required", nil)
	}

	q, err := h.answers.MarkAnswered(c.UserContext(), c.Params("id"), req.OperatorAnswer)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Pitanje je uspješno označeno kao odgovoreno",
		"question": dto.NewQuestionResponse(q),
	})
}

// SendAnswer POST /api/questions/:id/send-answer.
func (h *QuestionsHandler) SendAnswer(c *fiber.Ctx) error {
	q, err := h.answers.ResendAnswer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"question": dto.NewQuestionResponse(q),
	})
}

func listResponse(c *fiber.Ctx, questions []domain.Question) error {
	items := dto.NewQuestionResponses(questions)
	return c.JSON(fiber.Map{"success": true, "questions": items, "count": len(items)})
}
