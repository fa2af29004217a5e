package repository

import (
	"context"

	"expenselens/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

// Insert writes one expense row. The store assigns id and created_at; the
// returned Expense carries them back.
func (r *ExpenseRepository) Insert(ctx context.Context, description, aiAnalysis string) (*models.Expense, error) {
	query := squirrel.Insert("expenses").
		Columns("description", "ai_analysis").
		Values(description, aiAnalysis).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	expense := models.Expense{
		Description: description,
		AIAnalysis:  aiAnalysis,
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&expense.ID, &expense.CreatedAt); err != nil {
		return nil, err
	}

	return &expense, nil
}

// ListRecent returns up to limit expenses, most recent first.
func (r *ExpenseRepository) ListRecent(ctx context.Context, limit int) ([]*models.Expense, error) {
	query := squirrel.Select("id", "description", "ai_analysis", "created_at").
		From("expenses").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var expense models.Expense
		if err := rows.Scan(&expense.ID, &expense.Description, &expense.AIAnalysis, &expense.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, &expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}
