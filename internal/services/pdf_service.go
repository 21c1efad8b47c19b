package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"forge-backend/internal/cache"
	"forge-backend/internal/metrics"
	"forge-backend/internal/render"
	"forge-backend/internal/repositories"

	"github.com/google/uuid"
)

// PDFService drives the render pipeline: resolve template, expand it with
// invoice data, hand the document to the configured backend.
type PDFService struct {
	invoiceRepo *repositories.InvoiceRepository
	resolver    *render.Resolver
	backend     render.Backend
}

func NewPDFService(invoiceRepo *repositories.InvoiceRepository, resolver *render.Resolver, backend render.Backend) *PDFService {
	return &PDFService{
		invoiceRepo: invoiceRepo,
		resolver:    resolver,
		backend:     backend,
	}
}

// Filename returns the download filename for an invoice PDF
func Filename(invoiceID uuid.UUID) string {
	return fmt.Sprintf("invoice-%s.pdf", invoiceID)
}

// RenderInvoice produces the PDF bytes for an invoice owned by userID.
// Renders of the same unchanged invoice carry identical content, so
// concurrent requests may each render and cache without coordination.
func (s *PDFService) RenderInvoice(ctx context.Context, invoiceID, userID uuid.UUID) ([]byte, error) {
	invoice, err := s.invoiceRepo.Get(ctx, invoiceID, userID)
	if err != nil {
		return nil, err
	}

	if pdf, ok := cache.GetCachedPDF(ctx, invoice.ID, invoice.UpdatedAt); ok {
		metrics.PDFCacheHitsTotal.WithLabelValues("hit").Inc()
		return pdf, nil
	}
	metrics.PDFCacheHitsTotal.WithLabelValues("miss").Inc()

	items, err := s.invoiceRepo.GetItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	tpl, err := s.resolver.Resolve(ctx, userID, invoice.TemplateID)
	if err != nil {
		return nil, err
	}

	result := render.RenderDocument(tpl, *invoice, items)
	if result.Degraded {
		metrics.DegradedRendersTotal.Inc()
		log.Printf("[PDF] Degraded render for invoice %s: %v", invoice.ID, result.Cause)
	}

	start := time.Now()
	pdf, err := s.backend.Render(ctx, render.Document{
		Invoice: *invoice,
		Items:   items,
		HTML:    result.HTML,
	})
	metrics.PDFRenderDuration.WithLabelValues(s.backend.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PDFRendersTotal.WithLabelValues(s.backend.Name(), "error").Inc()
		return nil, err
	}
	metrics.PDFRendersTotal.WithLabelValues(s.backend.Name(), "ok").Inc()

	cache.CachePDF(ctx, invoice.ID, invoice.UpdatedAt, pdf)
	return pdf, nil
}
