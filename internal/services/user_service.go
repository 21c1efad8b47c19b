package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"forge-backend/internal/auth"
	"forge-backend/internal/billing"
	"forge-backend/internal/models"
	"forge-backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrInvalidCredentials is returned for unknown email or wrong password,
// without distinguishing the two
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering an email that already exists
var ErrEmailTaken = errors.New("email already registered")

type UserService struct {
	userRepo        *repositories.UserRepository
	sessionRepo     *repositories.SessionRepository
	sessionDuration time.Duration
}

func NewUserService(userRepo *repositories.UserRepository, sessionRepo *repositories.SessionRepository, sessionDurationDays int) *UserService {
	if sessionDurationDays <= 0 {
		sessionDurationDays = 7
	}
	return &UserService{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		sessionDuration: time.Duration(sessionDurationDays) * 24 * time.Hour,
	}
}

// SessionDuration returns the configured session lifetime, used for the
// cookie Max-Age
func (s *UserService) SessionDuration() time.Duration {
	return s.sessionDuration
}

// Register creates an account and logs it in
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, *models.Session, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, billing.NewValidationError("valid email required")
	}
	if len(req.Password) < 8 {
		return nil, nil, billing.NewValidationError("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Address:      req.Address,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login verifies credentials and opens a session
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.User, *models.Session, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout deletes a session. An already-gone session is not an error.
func (s *UserService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	err := s.sessionRepo.Delete(ctx, sessionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}

// UpdateProfile updates the user's address
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateAddress(ctx, userID, req.Address); err != nil {
		return nil, err
	}
	return s.userRepo.Get(ctx, userID)
}

func (s *UserService) createSession(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	now := time.Now()
	session := &models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
