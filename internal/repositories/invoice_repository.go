package repositories

import (
	"context"
	"errors"
	"fmt"

	"forge-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// nextInvoiceNumber advances the caller's counter row inside tx. The upsert
// takes a row lock, so concurrent inserts for the same user serialize and
// each one sees a distinct value.
func nextInvoiceNumber(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (string, error) {
	var n int
	err := tx.QueryRow(ctx,
		`INSERT INTO invoice_counters(user_id, last_number) VALUES($1, 1)
		 ON CONFLICT (user_id)
		 DO UPDATE SET last_number = invoice_counters.last_number + 1
		 RETURNING last_number`, userID,
	).Scan(&n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("IN-%05d", n), nil
}

// Create inserts an invoice and its line items in one transaction and
// assigns the invoice number from the owner's counter.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice, items []models.LineItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	invoice.InvoiceNumber, err = nextInvoiceNumber(ctx, tx, invoice.UserID)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(id, user_id, company_id, invoice_number, client_name, client_address,
		                      issuer_address, currency, amount, total_amount, date, template_id)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at, updated_at`,
		invoice.ID, invoice.UserID, invoice.CompanyID, invoice.InvoiceNumber, invoice.ClientName,
		invoice.ClientAddress, invoice.IssuerAddress, invoice.Currency,
		invoice.Amount, invoice.TotalAmount, invoice.Date, invoice.TemplateID,
	).Scan(&invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertLineItems(ctx, tx, invoice.ID, items); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertLineItems(ctx context.Context, tx pgx.Tx, invoiceID uuid.UUID, items []models.LineItem) error {
	for i := range items {
		items[i].InvoiceID = invoiceID
		_, err := tx.Exec(ctx,
			`INSERT INTO invoice_line_items(id, invoice_id, description, quantity,
			                                unit_price, use_quantity, line_total, position)
			 VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
			items[i].ID, invoiceID, items[i].Description, items[i].Quantity,
			items[i].UnitPrice, items[i].UseQuantity, items[i].LineTotal, items[i].Position,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves an invoice by ID scoped to its owner
func (r *InvoiceRepository) Get(ctx context.Context, id, userID uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.DB.QueryRow(ctx,
		`SELECT id, user_id, company_id, invoice_number, client_name, client_address, issuer_address,
		        currency, amount, total_amount, date, template_id, created_at, updated_at
		 FROM invoices WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&inv.ID, &inv.UserID, &inv.CompanyID, &inv.InvoiceNumber, &inv.ClientName, &inv.ClientAddress,
		&inv.IssuerAddress, &inv.Currency, &inv.Amount, &inv.TotalAmount, &inv.Date,
		&inv.TemplateID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// GetItems retrieves the line items of an invoice in display order
func (r *InvoiceRepository) GetItems(ctx context.Context, invoiceID uuid.UUID) ([]models.LineItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_id, description, quantity, unit_price, use_quantity, line_total, position
		 FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var it models.LineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.UseQuantity, &it.LineTotal, &it.Position); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List retrieves all invoices of a user, newest first
func (r *InvoiceRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, company_id, invoice_number, client_name, client_address, issuer_address,
		        currency, amount, total_amount, date, template_id, created_at, updated_at
		 FROM invoices WHERE user_id = $1 ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		var inv models.Invoice
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.CompanyID, &inv.InvoiceNumber, &inv.ClientName,
			&inv.ClientAddress, &inv.IssuerAddress, &inv.Currency, &inv.Amount,
			&inv.TotalAmount, &inv.Date, &inv.TemplateID, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Update rewrites the invoice fields and, when items is non-nil, replaces the
// whole line item set in the same transaction. The invoice number never changes.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice, items []models.LineItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE invoices
		 SET client_name = $3, client_address = $4, issuer_address = $5, currency = $6,
		     amount = $7, total_amount = $8, date = $9, template_id = $10, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING updated_at`,
		invoice.ID, invoice.UserID, invoice.ClientName, invoice.ClientAddress,
		invoice.IssuerAddress, invoice.Currency, invoice.Amount, invoice.TotalAmount,
		invoice.Date, invoice.TemplateID,
	).Scan(&invoice.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if items != nil {
		if _, err := tx.Exec(ctx,
			`DELETE FROM invoice_line_items WHERE invoice_id = $1`, invoice.ID); err != nil {
			return err
		}
		if err := insertLineItems(ctx, tx, invoice.ID, items); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// LastLineItemDescription returns the description of the most recently
// created line item across the user's invoices
func (r *InvoiceRepository) LastLineItemDescription(ctx context.Context, userID uuid.UUID) (string, error) {
	var desc string
	err := r.DB.QueryRow(ctx,
		`SELECT li.description
		 FROM invoice_line_items li
		 JOIN invoices i ON i.id = li.invoice_id
		 WHERE i.user_id = $1
		 ORDER BY i.created_at DESC, li.position DESC
		 LIMIT 1`, userID,
	).Scan(&desc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return desc, nil
}

// Delete removes an invoice; line items go with it via cascade
func (r *InvoiceRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
