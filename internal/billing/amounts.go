package billing

import (
	"forge-backend/internal/models"

	"github.com/google/uuid"
)

// ValidationError marks input errors that must surface as a client error
// and never be retried
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

// LineTotal applies the use_quantity rule: quantity*unit_price for metered
// items, the flat unit price otherwise. Negative inputs are allowed; they
// model credits and discounts.
func LineTotal(quantity, unitPrice float64, useQuantity bool) float64 {
	if useQuantity {
		return quantity * unitPrice
	}
	return unitPrice
}

// ComputeLineTotals turns submitted line items into persistable rows with
// derived line totals, and returns the invoice total as their sum. An absent
// use_quantity flag defaults to true. Pure; order is preserved.
func ComputeLineTotals(inputs []models.LineItemInput) ([]models.LineItem, float64, error) {
	if len(inputs) == 0 {
		return nil, 0, NewValidationError("at least one line item required")
	}

	items := make([]models.LineItem, 0, len(inputs))
	var total float64
	for i, in := range inputs {
		useQuantity := true
		if in.UseQuantity != nil {
			useQuantity = *in.UseQuantity
		}
		lineTotal := LineTotal(in.Quantity, in.UnitPrice, useQuantity)
		items = append(items, models.LineItem{
			ID:          uuid.New(),
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			UseQuantity: useQuantity,
			LineTotal:   lineTotal,
			Position:    i,
		})
		total += lineTotal
	}

	return items, total, nil
}
