package repositories

import (
	"context"
	"errors"

	"forge-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO users(id, email, password_hash, address)
		 VALUES($1, $2, $3, $4)
		 RETURNING created_at`,
		user.ID, user.Email, user.PasswordHash, user.Address,
	).Scan(&user.CreatedAt)
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRow(ctx,
		`SELECT id, email, password_hash, address, company_id, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Address, &user.CompanyID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRow(ctx,
		`SELECT id, email, password_hash, address, company_id, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Address, &user.CompanyID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAddress updates the profile address
func (r *UserRepository) UpdateAddress(ctx context.Context, id uuid.UUID, address *string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE users SET address = $2 WHERE id = $1`, id, address)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCompany links a user to a company
func (r *UserRepository) SetCompany(ctx context.Context, id, companyID uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, `UPDATE users SET company_id = $2 WHERE id = $1`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
