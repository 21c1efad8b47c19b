package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"forge-backend/internal/billing"
	"forge-backend/internal/models"

	"github.com/google/uuid"
)

func TestCreateRejectsBadInput(t *testing.T) {
	s := NewInvoiceService(nil, nil)
	user := &models.User{ID: uuid.New()}

	cases := []struct {
		name string
		req  models.CreateInvoiceRequest
	}{
		{"missing client name", models.CreateInvoiceRequest{
			ClientAddress: "1 Main St",
			Items:         []models.LineItemInput{{Description: "work", Quantity: 1, UnitPrice: 100}},
		}},
		{"missing client address", models.CreateInvoiceRequest{
			ClientName: "Acme",
			Items:      []models.LineItemInput{{Description: "work", Quantity: 1, UnitPrice: 100}},
		}},
		{"no line items", models.CreateInvoiceRequest{
			ClientName:    "Acme",
			ClientAddress: "1 Main St",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), user, tc.req)
			var verr *billing.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := parseDate("14.03.2026"); err == nil {
		t.Error("non-ISO date must be rejected")
	}
	var verr *billing.ValidationError
	_, err = parseDate("not a date")
	if !errors.As(err, &verr) {
		t.Errorf("expected validation error, got %v", err)
	}

	// empty date defaults to today at midnight UTC
	got, err = parseDate("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 0 || got.Location() != time.UTC {
		t.Errorf("default date must be midnight UTC, got %v", got)
	}
}

func TestIssuerAddress(t *testing.T) {
	addr := "9 Harbour Rd, Dublin"
	if got := issuerAddress(&models.User{Address: &addr}); got != addr {
		t.Errorf("got %q", got)
	}
	if got := issuerAddress(&models.User{}); got != "" {
		t.Errorf("missing address must yield empty string, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	id := uuid.MustParse("5bd9e7bd-3c33-4b14-9dbc-65b6c2b4f0a1")
	want := "invoice-5bd9e7bd-3c33-4b14-9dbc-65b6c2b4f0a1.pdf"
	if got := Filename(id); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
