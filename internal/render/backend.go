package render

import (
	"context"

	"forge-backend/internal/models"
)

// Document is the finished render handed to a PDF backend. The converter
// backend consumes HTML; the native backend lays the typed invoice data out
// directly.
type Document struct {
	Invoice models.Invoice
	Items   []models.LineItem
	HTML    string
}

// Backend turns a rendered document into PDF bytes. Implementations must be
// safe for concurrent renders; nothing may be shared between two in-flight
// calls.
type Backend interface {
	Name() string
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// BackendError carries the diagnostic output of a failed PDF conversion
type BackendError struct {
	Backend    string
	Diagnostic string
	Timeout    bool
	Err        error
}

func (e *BackendError) Error() string {
	msg := "pdf backend " + e.Backend + " failed"
	if e.Timeout {
		msg = "pdf backend " + e.Backend + " timed out"
	}
	if e.Diagnostic != "" {
		msg += ": " + e.Diagnostic
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// validPDF checks the magic bytes every backend must produce
func validPDF(b []byte) bool {
	return len(b) >= 4 && string(b[:4]) == "%PDF"
}
