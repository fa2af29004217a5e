package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"expenselens/internal/models"
	"expenselens/pkg/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeExtractor struct {
	calls int
	resp  string
	err   error
	// block makes Extract wait for ctx cancellation, simulating a provider
	// that never answers.
	block bool
}

func (f *fakeExtractor) Extract(ctx context.Context, description string) (string, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	return f.resp, nil
}

type fakeStore struct {
	insertCalls     int
	listCalls       int
	insertErr       error
	listErr         error
	lastDescription string
	lastAnalysis    string
	lastLimit       int
	expenses        []*models.Expense
}

func (f *fakeStore) Insert(ctx context.Context, description, aiAnalysis string) (*models.Expense, error) {
	f.insertCalls++
	f.lastDescription = description
	f.lastAnalysis = aiAnalysis
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	expense := &models.Expense{
		ID:          uuid.New(),
		Description: description,
		AIAnalysis:  aiAnalysis,
		CreatedAt:   time.Now(),
	}
	// Most recent first, like the real query.
	f.expenses = append([]*models.Expense{expense}, f.expenses...)
	return expense, nil
}

func (f *fakeStore) ListRecent(ctx context.Context, limit int) ([]*models.Expense, error) {
	f.listCalls++
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > len(f.expenses) {
		limit = len(f.expenses)
	}
	return f.expenses[:limit], nil
}

func newTestService(extractor Extractor, store ExpenseStore) *IngestService {
	cfg := &config.IngestConfig{
		ExtractTimeout: 100 * time.Millisecond,
		StoreTimeout:   100 * time.Millisecond,
	}
	return NewIngestService(extractor, store, cfg, zap.NewNop())
}

func TestIngestRejectsEmptyInput(t *testing.T) {
	for _, description := range []string{"", "   ", "\t\n"} {
		extractor := &fakeExtractor{}
		store := &fakeStore{}
		svc := newTestService(extractor, store)

		_, err := svc.Ingest(context.Background(), description)

		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Ingest(%q) error = %v, want ErrInvalidInput", description, err)
		}
		if extractor.calls != 0 {
			t.Errorf("Ingest(%q) made %d extraction calls, want 0", description, extractor.calls)
		}
		if store.insertCalls != 0 {
			t.Errorf("Ingest(%q) made %d store calls, want 0", description, store.insertCalls)
		}
	}
}

func TestIngestStoresDescriptionAndRawAnalysisVerbatim(t *testing.T) {
	const (
		description = "Lunch at Subway for $12.99"
		rawAnalysis = "Lunch, $12.99, Food"
	)
	extractor := &fakeExtractor{resp: rawAnalysis}
	store := &fakeStore{}
	svc := newTestService(extractor, store)

	resp, err := svc.Ingest(context.Background(), description)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if store.lastDescription != description {
		t.Errorf("stored description = %q, want %q", store.lastDescription, description)
	}
	if store.lastAnalysis != rawAnalysis {
		t.Errorf("stored ai_analysis = %q, want %q", store.lastAnalysis, rawAnalysis)
	}

	if resp.Analysis.Name != "Lunch" {
		t.Errorf("Analysis.Name = %q, want Lunch", resp.Analysis.Name)
	}
	if want := decimal.RequireFromString("12.99"); !resp.Analysis.Amount.Equal(want) {
		t.Errorf("Analysis.Amount = %s, want %s", resp.Analysis.Amount, want)
	}
	if resp.Analysis.Category != "Food" {
		t.Errorf("Analysis.Category = %q, want Food", resp.Analysis.Category)
	}
	if resp.Expense == nil {
		t.Fatal("Expense should be set on the done path")
	}
	if resp.Expense.Description != description {
		t.Errorf("Expense.Description = %q, want %q", resp.Expense.Description, description)
	}
}

func TestIngestDegradedAnalysisStillStoresRawText(t *testing.T) {
	const rawAnalysis = "I am unable to analyze this."
	extractor := &fakeExtractor{resp: rawAnalysis}
	store := &fakeStore{}
	svc := newTestService(extractor, store)

	resp, err := svc.Ingest(context.Background(), "unintelligible noise")
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if !resp.Analysis.Amount.IsZero() {
		t.Errorf("Amount = %s, want 0", resp.Analysis.Amount)
	}
	if resp.Analysis.Category != "Other" {
		t.Errorf("Category = %q, want Other", resp.Analysis.Category)
	}
	if resp.Analysis.Parsed {
		t.Error("Parsed should be false when the amount degraded")
	}
	if store.lastAnalysis != rawAnalysis {
		t.Errorf("stored ai_analysis = %q, want %q", store.lastAnalysis, rawAnalysis)
	}
}

func TestIngestExtractionFailure(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("connection refused")}
	store := &fakeStore{}
	svc := newTestService(extractor, store)

	resp, err := svc.Ingest(context.Background(), "coffee 3.50")

	if !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("error = %v, want ErrExtractionFailed", err)
	}
	if resp != nil {
		t.Errorf("response = %+v, want nil", resp)
	}
	if store.insertCalls != 0 {
		t.Errorf("store received %d calls, want 0", store.insertCalls)
	}
}

func TestIngestExtractionTimeout(t *testing.T) {
	extractor := &fakeExtractor{block: true}
	store := &fakeStore{}
	svc := newTestService(extractor, store)

	_, err := svc.Ingest(context.Background(), "coffee 3.50")

	if !errors.Is(err, ErrExtractionFailed) {
		t.Errorf("error = %v, want ErrExtractionFailed", err)
	}
	if store.insertCalls != 0 {
		t.Errorf("store received %d calls, want 0", store.insertCalls)
	}
}

func TestIngestStorageFailureCarriesAnalysis(t *testing.T) {
	extractor := &fakeExtractor{resp: `{"name": "Coffee", "amount": 3.50, "category": "Food"}`}
	store := &fakeStore{insertErr: errors.New("connection reset")}
	svc := newTestService(extractor, store)

	resp, err := svc.Ingest(context.Background(), "coffee 3.50")

	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("error = %v, want ErrStorageUnavailable", err)
	}
	if resp == nil {
		t.Fatal("response should carry the parsed analysis on storage failure")
	}
	if resp.Analysis.Name != "Coffee" {
		t.Errorf("Analysis.Name = %q, want Coffee", resp.Analysis.Name)
	}
	if resp.Expense != nil {
		t.Errorf("Expense = %+v, want nil: nothing was persisted", resp.Expense)
	}
}

func TestIngestThenListReturnsNewestFirst(t *testing.T) {
	extractor := &fakeExtractor{resp: "Lunch, $12.99, Food"}
	store := &fakeStore{}
	svc := newTestService(extractor, store)

	if _, err := svc.Ingest(context.Background(), "older expense"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if _, err := svc.Ingest(context.Background(), "newer expense"); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	expenses, err := svc.ListRecent(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(expenses))
	}
	if expenses[0].Description != "newer expense" {
		t.Errorf("first expense = %q, want the just-stored one", expenses[0].Description)
	}
}

func TestListRecentStorageFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("no route to host")}
	svc := newTestService(&fakeExtractor{}, store)

	_, err := svc.ListRecent(context.Background(), 10)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("error = %v, want ErrStorageUnavailable", err)
	}
}
