package handlers

import (
	"context"
	"errors"

	"expenselens/internal/dto"
	"expenselens/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExpenseIngestor is what the handler needs from the service layer.
type ExpenseIngestor interface {
	Ingest(ctx context.Context, description string) (*dto.AnalyzeExpenseResponse, error)
	ListRecent(ctx context.Context, limit int) ([]dto.ExpenseResponse, error)
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
}

type ExpenseHandler struct {
	ingestor ExpenseIngestor
	logger   *zap.Logger
}

func NewExpenseHandler(ingestor ExpenseIngestor, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		ingestor: ingestor,
		logger:   logger,
	}
}

// AnalyzeExpense godoc
// @Summary Analyze and store an expense
// @Description Extracts name, amount and category from a free-text expense description and persists the record
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeExpenseRequest true "Expense description"
// @Success 200 {object} dto.AnalyzeExpenseResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]interface{}
// @Router /expenses/analyze [post]
func (h *ExpenseHandler) AnalyzeExpense(c *fiber.Ctx) error {
	var req dto.AnalyzeExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Description is required",
		})
	}

	resp, err := h.ingestor.Ingest(c.Context(), req.Description)
	if err != nil {
		return h.ingestError(c, resp, err)
	}

	return c.JSON(resp)
}

// ingestError maps the failure taxonomy onto HTTP statuses. A storage
// failure still surfaces the parsed analysis: the extraction succeeded and
// the caller may want it even though nothing was persisted.
func (h *ExpenseHandler) ingestError(c *fiber.Ctx, resp *dto.AnalyzeExpenseResponse, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Description cannot be empty",
		})
	case errors.Is(err, service.ErrExtractionFailed):
		h.logger.Error("Expense analysis failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Expense analysis is temporarily unavailable",
		})
	case errors.Is(err, service.ErrStorageUnavailable):
		h.logger.Error("Expense storage failed", zap.Error(err))
		body := fiber.Map{
			"error": "Expense could not be stored",
		}
		if resp != nil {
			body["analysis"] = resp.Analysis
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	default:
		h.logger.Error("Expense ingestion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to ingest expense",
		})
	}
}

// ListExpenses godoc
// @Summary List recent expenses
// @Description Returns stored expenses, most recent first
// @Tags expenses
// @Produce json
// @Param limit query int false "Maximum rows to return" default(20)
// @Success 200 {array} dto.ExpenseResponse
// @Failure 503 {object} map[string]string
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	expenses, err := h.ingestor.ListRecent(c.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Expense store is unavailable",
		})
	}

	if expenses == nil {
		expenses = []dto.ExpenseResponse{}
	}
	return c.JSON(expenses)
}

// GetSummary godoc
// @Summary Summarize stored expenses
// @Description Totals and per-category breakdown derived from stored records
// @Tags expenses
// @Produce json
// @Success 200 {object} dto.SummaryResponse
// @Failure 503 {object} map[string]string
// @Router /expenses/summary [get]
func (h *ExpenseHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.ingestor.Summary(c.Context())
	if err != nil {
		h.logger.Error("Failed to build summary", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Expense store is unavailable",
		})
	}

	return c.JSON(summary)
}
