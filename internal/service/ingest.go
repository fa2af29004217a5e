package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"expenselens/internal/dto"
	"expenselens/internal/metrics"
	"expenselens/internal/models"
	"expenselens/pkg/config"

	"go.uber.org/zap"
)

// Extractor is the AI collaborator: one completion call per request.
type Extractor interface {
	Extract(ctx context.Context, description string) (string, error)
}

// ExpenseStore is the persistence collaborator backed by the hosted store.
type ExpenseStore interface {
	Insert(ctx context.Context, description, aiAnalysis string) (*models.Expense, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Expense, error)
}

// IngestService runs the ingestion pipeline: validate the description, call
// the extractor, parse its raw text, persist the record. Each outbound call
// is bounded by its own timeout.
type IngestService struct {
	extractor      Extractor
	store          ExpenseStore
	extractTimeout time.Duration
	storeTimeout   time.Duration
	logger         *zap.Logger
}

func NewIngestService(extractor Extractor, store ExpenseStore, cfg *config.IngestConfig, logger *zap.Logger) *IngestService {
	return &IngestService{
		extractor:      extractor,
		store:          store,
		extractTimeout: cfg.ExtractTimeout,
		storeTimeout:   cfg.StoreTimeout,
		logger:         logger,
	}
}

// Ingest takes a raw description through extraction, parsing and storage.
// Failures map onto the sentinel taxonomy; on ErrStorageUnavailable the
// returned response still carries the parsed analysis (nothing was
// persisted, so Expense stays nil).
func (s *IngestService) Ingest(ctx context.Context, description string) (*dto.AnalyzeExpenseResponse, error) {
	if strings.TrimSpace(description) == "" {
		metrics.IngestFailures.WithLabelValues("invalid_input").Inc()
		return nil, ErrInvalidInput
	}

	extractCtx, cancel := context.WithTimeout(ctx, s.extractTimeout)
	defer cancel()

	metrics.ProviderCalls.WithLabelValues("gigachat").Inc()
	raw, err := s.extractor.Extract(extractCtx, description)
	if err != nil {
		metrics.IngestFailures.WithLabelValues("extraction_failed").Inc()
		s.logger.Error("Extraction call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	// Parsing never fails; it only degrades the structured fields. The raw
	// text is stored verbatim regardless.
	parsed := ParseAnalysis(raw, description)
	resp := &dto.AnalyzeExpenseResponse{
		Analysis: toAnalysisDTO(parsed),
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	metrics.ProviderCalls.WithLabelValues("postgres").Inc()
	expense, err := s.store.Insert(storeCtx, description, raw)
	if err != nil {
		metrics.IngestFailures.WithLabelValues("storage_unavailable").Inc()
		s.logger.Error("Store insert failed", zap.Error(err))
		return resp, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	metrics.Ingestions.Inc()
	s.logger.Info("Expense ingested",
		zap.String("expense_id", expense.ID.String()),
		zap.String("category", string(parsed.Category)),
		zap.Bool("parsed", parsed.Parsed),
	)

	resp.Expense = toExpenseDTO(expense)
	return resp, nil
}

// ListRecent returns up to limit stored expenses, most recent first.
func (s *IngestService) ListRecent(ctx context.Context, limit int) ([]dto.ExpenseResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	metrics.ProviderCalls.WithLabelValues("postgres").Inc()
	expenses, err := s.store.ListRecent(storeCtx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	responses := make([]dto.ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = *toExpenseDTO(expense)
	}
	return responses, nil
}

func toAnalysisDTO(parsed models.ParsedExpense) dto.ExpenseAnalysis {
	return dto.ExpenseAnalysis{
		Name:     parsed.Name,
		Amount:   parsed.Amount,
		Category: string(parsed.Category),
		Parsed:   parsed.Parsed,
	}
}

func toExpenseDTO(expense *models.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          expense.ID.String(),
		Description: expense.Description,
		AIAnalysis:  expense.AIAnalysis,
		CreatedAt:   expense.CreatedAt.Format(time.RFC3339),
	}
}
