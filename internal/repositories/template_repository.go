package repositories

import (
	"context"
	"errors"

	"forge-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TemplateRepository struct {
	DB *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

// Create inserts a new invoice template
func (r *TemplateRepository) Create(ctx context.Context, tpl *models.InvoiceTemplate) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO invoice_templates(id, user_id, name, html)
		 VALUES($1, $2, $3, $4)
		 RETURNING created_at`,
		tpl.ID, tpl.UserID, tpl.Name, tpl.HTML,
	).Scan(&tpl.CreatedAt)
}

// Get retrieves a template by ID scoped to its owner
func (r *TemplateRepository) Get(ctx context.Context, id, userID uuid.UUID) (*models.InvoiceTemplate, error) {
	var tpl models.InvoiceTemplate
	err := r.DB.QueryRow(ctx,
		`SELECT id, user_id, name, html, created_at
		 FROM invoice_templates WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&tpl.ID, &tpl.UserID, &tpl.Name, &tpl.HTML, &tpl.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tpl, nil
}

// GetOwned returns just the template body for rendering. Satisfies
// render.TemplateStore.
func (r *TemplateRepository) GetOwned(ctx context.Context, id, userID uuid.UUID) (string, error) {
	var html string
	err := r.DB.QueryRow(ctx,
		`SELECT html FROM invoice_templates WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&html)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return html, nil
}

// List retrieves all templates of a user
func (r *TemplateRepository) List(ctx context.Context, userID uuid.UUID) ([]models.InvoiceTemplate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, name, html, created_at
		 FROM invoice_templates WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.InvoiceTemplate
	for rows.Next() {
		var tpl models.InvoiceTemplate
		if err := rows.Scan(&tpl.ID, &tpl.UserID, &tpl.Name, &tpl.HTML, &tpl.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, tpl)
	}
	return templates, rows.Err()
}

// Update rewrites a template's name and body
func (r *TemplateRepository) Update(ctx context.Context, tpl *models.InvoiceTemplate) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoice_templates SET name = $3, html = $4
		 WHERE id = $1 AND user_id = $2`,
		tpl.ID, tpl.UserID, tpl.Name, tpl.HTML,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a template; invoices referencing it fall back to the
// default via ON DELETE SET NULL
func (r *TemplateRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM invoice_templates WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
