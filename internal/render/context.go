package render

import (
	"forge-backend/internal/models"
)

// LegalNote is printed at the foot of every generated invoice
const LegalNote = "Payment is due within 14 days of the invoice date. Late payments may be subject to statutory interest."

// BuildContext flattens an invoice and its ordered line items into the
// variable scope templates expand against. The subtotal is recomputed from
// the current line totals rather than read from the stored total, so drift
// between the two is visible in the document. Built fresh on every render,
// never persisted.
func BuildContext(inv models.Invoice, items []models.LineItem) *Scope {
	itemViews := make([]map[string]any, 0, len(items))
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal
		itemViews = append(itemViews, map[string]any{
			"description":  item.Description,
			"quantity":     item.Quantity,
			"unit_price":   item.UnitPrice,
			"line_total":   item.LineTotal,
			"use_quantity": item.UseQuantity,
			"currency":     inv.Currency,
		})
	}

	return NewScope(map[string]any{
		"id":             inv.ID.String(),
		"invoice_number": inv.InvoiceNumber,
		"date":           inv.Date.Format("2006-01-02"),
		"client_name":    inv.ClientName,
		"client_address": inv.ClientAddress,
		"issuer_address": inv.IssuerAddress,
		"currency":       inv.Currency,
		"total":          inv.TotalAmount,
		"total_amount":   inv.TotalAmount,
		"subtotal":       subtotal,
		"legal_note":     LegalNote,
		"items":          itemViews,
	})
}
