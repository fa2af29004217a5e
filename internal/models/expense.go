package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is one ingested expense row. ID and CreatedAt are assigned by the
// store on insert and are never set by the application.
type Expense struct {
	ID          uuid.UUID `db:"id"`
	Description string    `db:"description"`
	AIAnalysis  string    `db:"ai_analysis"`
	CreatedAt   time.Time `db:"created_at"`
}

// ParsedExpense is the structured reading of an Expense's raw AIAnalysis
// text. It is derived transiently for presentation and never persisted.
// Parsed is false when the amount could not be recovered and the fields
// degraded to their defaults.
type ParsedExpense struct {
	Name     string
	Amount   decimal.Decimal
	Category Category
	Parsed   bool
}
