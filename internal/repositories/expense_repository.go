package repositories

import (
	"context"
	"errors"

	"forge-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

// Create inserts a new expense
func (r *ExpenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO expenses(id, user_id, vendor, description, amount, currency, date, category, receipt_url)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		expense.ID, expense.UserID, expense.Vendor, expense.Description,
		expense.Amount, expense.Currency, expense.Date, expense.Category, expense.ReceiptURL,
	).Scan(&expense.CreatedAt)
}

// Get retrieves an expense by ID scoped to its owner
func (r *ExpenseRepository) Get(ctx context.Context, id, userID uuid.UUID) (*models.Expense, error) {
	var e models.Expense
	err := r.DB.QueryRow(ctx,
		`SELECT id, user_id, vendor, description, amount, currency, date, category, receipt_url, created_at
		 FROM expenses WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&e.ID, &e.UserID, &e.Vendor, &e.Description, &e.Amount, &e.Currency,
		&e.Date, &e.Category, &e.ReceiptURL, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List retrieves all expenses of a user, newest first
func (r *ExpenseRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Expense, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, vendor, description, amount, currency, date, category, receipt_url, created_at
		 FROM expenses WHERE user_id = $1 ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Vendor, &e.Description, &e.Amount,
			&e.Currency, &e.Date, &e.Category, &e.ReceiptURL, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Update rewrites the expense record
func (r *ExpenseRepository) Update(ctx context.Context, expense *models.Expense) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE expenses
		 SET vendor = $3, description = $4, amount = $5, currency = $6,
		     date = $7, category = $8, receipt_url = $9
		 WHERE id = $1 AND user_id = $2`,
		expense.ID, expense.UserID, expense.Vendor, expense.Description,
		expense.Amount, expense.Currency, expense.Date, expense.Category, expense.ReceiptURL,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
