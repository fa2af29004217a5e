package service

import (
	"context"
	"fmt"
	"sort"

	"expenselens/internal/dto"
	"expenselens/internal/metrics"

	"github.com/shopspring/decimal"
)

const (
	// summaryWindow caps how many rows one summary re-parses.
	summaryWindow = 500
	recentCount   = 5
	topCategories = 5
)

// Summary aggregates stored expenses into totals. Amounts are not persisted
// as structured columns, so each row's ai_analysis is re-parsed here; rows
// whose amount never parsed contribute zero.
func (s *IngestService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	metrics.ProviderCalls.WithLabelValues("postgres").Inc()
	expenses, err := s.store.ListRecent(storeCtx, summaryWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, expense := range expenses {
		parsed := ParseAnalysis(expense.AIAnalysis, expense.Description)
		total = total.Add(parsed.Amount)
		category := string(parsed.Category)
		byCategory[category] = byCategory[category].Add(parsed.Amount)
	}

	categoryTotals := make([]dto.CategoryTotal, 0, len(byCategory))
	for category, amount := range byCategory {
		categoryTotals = append(categoryTotals, dto.CategoryTotal{Category: category, Total: amount})
	}
	sort.Slice(categoryTotals, func(i, j int) bool {
		if categoryTotals[i].Total.Equal(categoryTotals[j].Total) {
			return categoryTotals[i].Category < categoryTotals[j].Category
		}
		return categoryTotals[i].Total.GreaterThan(categoryTotals[j].Total)
	})

	top := categoryTotals
	if len(top) > topCategories {
		top = top[:topCategories]
	}

	recent := expenses
	if len(recent) > recentCount {
		recent = recent[:recentCount]
	}
	recentResponses := make([]dto.ExpenseResponse, len(recent))
	for i, expense := range recent {
		recentResponses[i] = *toExpenseDTO(expense)
	}

	return &dto.SummaryResponse{
		Count:         len(expenses),
		TotalAmount:   total,
		ByCategory:    categoryTotals,
		TopCategories: top,
		Recent:        recentResponses,
	}, nil
}
