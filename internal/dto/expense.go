package dto

import "github.com/shopspring/decimal"

type AnalyzeExpenseRequest struct {
	Description string `json:"description"`
}

// ExpenseAnalysis is the best-effort structured reading of the provider's
// raw text. Parsed is false when the amount fell back to zero.
type ExpenseAnalysis struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Parsed   bool            `json:"parsed"`
}

type ExpenseResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	AIAnalysis  string `json:"ai_analysis"`
	CreatedAt   string `json:"created_at"`
}

// AnalyzeExpenseResponse carries the analysis and, when persistence
// succeeded, the stored record. Expense is nil on the partial-success path.
type AnalyzeExpenseResponse struct {
	Analysis ExpenseAnalysis  `json:"analysis"`
	Expense  *ExpenseResponse `json:"expense,omitempty"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type SummaryResponse struct {
	Count         int               `json:"count"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	ByCategory    []CategoryTotal   `json:"by_category"`
	TopCategories []CategoryTotal   `json:"top_categories"`
	Recent        []ExpenseResponse `json:"recent"`
}
