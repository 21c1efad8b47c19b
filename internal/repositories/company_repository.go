package repositories

import (
	"context"
	"errors"

	"forge-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompanyRepository struct {
	DB *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

// Create inserts a new company
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO companies(id, name, address, registration_number)
		 VALUES($1, $2, $3, $4)
		 RETURNING created_at`,
		company.ID, company.Name, company.Address, company.RegistrationNumber,
	).Scan(&company.CreatedAt)
}

// Get retrieves a company by ID
func (r *CompanyRepository) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, address, registration_number, created_at
		 FROM companies WHERE id = $1`, id,
	).Scan(&company.ID, &company.Name, &company.Address,
		&company.RegistrationNumber, &company.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// Update rewrites the company record
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE companies SET name = $2, address = $3, registration_number = $4
		 WHERE id = $1`,
		company.ID, company.Name, company.Address, company.RegistrationNumber,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
