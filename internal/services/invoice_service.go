package services

import (
	"context"
	"strings"
	"time"

	"forge-backend/internal/billing"
	"forge-backend/internal/cache"
	"forge-backend/internal/models"
	"forge-backend/internal/render"
	"forge-backend/internal/repositories"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type InvoiceService struct {
	invoiceRepo *repositories.InvoiceRepository
	resolver    *render.Resolver
}

func NewInvoiceService(invoiceRepo *repositories.InvoiceRepository, resolver *render.Resolver) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		resolver:    resolver,
	}
}

// Create validates the request, prices the line items and stores the invoice.
// Totals are always computed server-side; client-sent amounts are ignored.
func (s *InvoiceService) Create(ctx context.Context, user *models.User, req models.CreateInvoiceRequest) (*models.InvoiceWithItems, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, billing.NewValidationError("client name required")
	}
	if strings.TrimSpace(req.ClientAddress) == "" {
		return nil, billing.NewValidationError("client address required")
	}

	// Template ownership is checked strictly here; only render time degrades
	if err := s.resolver.ValidateOwnership(ctx, user.ID, req.TemplateID); err != nil {
		return nil, err
	}

	items, total, err := billing.ComputeLineTotals(req.Items)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "EUR"
	}

	invoice := &models.Invoice{
		ID:            uuid.New(),
		UserID:        user.ID,
		CompanyID:     user.CompanyID,
		TemplateID:    req.TemplateID,
		ClientName:    req.ClientName,
		ClientAddress: req.ClientAddress,
		IssuerAddress: issuerAddress(user),
		Currency:      currency,
		Amount:        total,
		TotalAmount:   total,
		Date:          date,
	}
	if err := s.invoiceRepo.Create(ctx, invoice, items); err != nil {
		return nil, err
	}
	return &models.InvoiceWithItems{Invoice: *invoice, Items: items}, nil
}

// Get returns an invoice with its line items
func (s *InvoiceService) Get(ctx context.Context, id, userID uuid.UUID) (*models.InvoiceWithItems, error) {
	invoice, err := s.invoiceRepo.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.invoiceRepo.GetItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return &models.InvoiceWithItems{Invoice: *invoice, Items: items}, nil
}

// List returns the user's invoices without line items
func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID) ([]models.Invoice, error) {
	return s.invoiceRepo.List(ctx, userID)
}

// Update applies a partial update. A supplied item list fully replaces the
// stored one and totals are recomputed from it.
func (s *InvoiceService) Update(ctx context.Context, user *models.User, id uuid.UUID, req models.UpdateInvoiceRequest) (*models.InvoiceWithItems, error) {
	invoice, err := s.invoiceRepo.Get(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		if strings.TrimSpace(*req.ClientName) == "" {
			return nil, billing.NewValidationError("client name required")
		}
		invoice.ClientName = *req.ClientName
	}
	if req.ClientAddress != nil {
		if strings.TrimSpace(*req.ClientAddress) == "" {
			return nil, billing.NewValidationError("client address required")
		}
		invoice.ClientAddress = *req.ClientAddress
	}
	if req.Currency != nil {
		invoice.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		invoice.Date = date
	}
	if req.TemplateID != nil {
		if err := s.resolver.ValidateOwnership(ctx, user.ID, req.TemplateID); err != nil {
			return nil, err
		}
		invoice.TemplateID = req.TemplateID
	}

	var items []models.LineItem
	if req.Items != nil {
		var total float64
		items, total, err = billing.ComputeLineTotals(req.Items)
		if err != nil {
			return nil, err
		}
		invoice.Amount = total
		invoice.TotalAmount = total
	}

	if err := s.invoiceRepo.Update(ctx, invoice, items); err != nil {
		return nil, err
	}
	cache.InvalidatePDF(ctx, invoice.ID)

	stored, err := s.invoiceRepo.GetItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return &models.InvoiceWithItems{Invoice: *invoice, Items: stored}, nil
}

// Delete removes an invoice and any cached renders of it
func (s *InvoiceService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.invoiceRepo.Delete(ctx, id, userID); err != nil {
		return err
	}
	cache.InvalidatePDF(ctx, id)
	return nil
}

func parseDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, billing.NewValidationError("date must be YYYY-MM-DD")
	}
	return date, nil
}

func issuerAddress(user *models.User) string {
	if user.Address != nil {
		return *user.Address
	}
	return ""
}
