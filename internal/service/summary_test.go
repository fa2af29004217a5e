package service

import (
	"context"
	"testing"
	"time"

	"expenselens/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestSummaryAggregatesReparsedAnalyses(t *testing.T) {
	store := &fakeStore{
		expenses: []*models.Expense{
			{
				ID:          uuid.New(),
				Description: "dinner out",
				AIAnalysis:  `{"name": "Dinner", "amount": 40, "category": "Food"}`,
				CreatedAt:   time.Now(),
			},
			{
				ID:          uuid.New(),
				Description: "taxi home",
				AIAnalysis:  `{"name": "Taxi", "amount": 12.50, "category": "Transport"}`,
				CreatedAt:   time.Now().Add(-time.Hour),
			},
			{
				ID:          uuid.New(),
				Description: "groceries",
				AIAnalysis:  `{"name": "Groceries", "amount": 30, "category": "Food"}`,
				CreatedAt:   time.Now().Add(-2 * time.Hour),
			},
			{
				ID:          uuid.New(),
				Description: "mystery",
				AIAnalysis:  "no idea what this was",
				CreatedAt:   time.Now().Add(-3 * time.Hour),
			},
		},
	}
	svc := newTestService(&fakeExtractor{}, store)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.Count != 4 {
		t.Errorf("Count = %d, want 4", summary.Count)
	}
	if want := decimal.RequireFromString("82.5"); !summary.TotalAmount.Equal(want) {
		t.Errorf("TotalAmount = %s, want %s", summary.TotalAmount, want)
	}

	if len(summary.ByCategory) != 3 {
		t.Fatalf("ByCategory has %d entries, want 3 (Food, Transport, Other)", len(summary.ByCategory))
	}
	if summary.ByCategory[0].Category != "Food" {
		t.Errorf("top category = %q, want Food", summary.ByCategory[0].Category)
	}
	if want := decimal.RequireFromString("70"); !summary.ByCategory[0].Total.Equal(want) {
		t.Errorf("Food total = %s, want %s", summary.ByCategory[0].Total, want)
	}

	if len(summary.Recent) != 4 {
		t.Errorf("Recent has %d entries, want 4", len(summary.Recent))
	}
	if summary.Recent[0].Description != "dinner out" {
		t.Errorf("most recent = %q, want dinner out", summary.Recent[0].Description)
	}
}

func TestSummaryEmptyStore(t *testing.T) {
	svc := newTestService(&fakeExtractor{}, &fakeStore{})

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.Count != 0 {
		t.Errorf("Count = %d, want 0", summary.Count)
	}
	if !summary.TotalAmount.IsZero() {
		t.Errorf("TotalAmount = %s, want 0", summary.TotalAmount)
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("ByCategory has %d entries, want 0", len(summary.ByCategory))
	}
}
