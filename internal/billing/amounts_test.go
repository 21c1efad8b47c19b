package billing

import (
	"errors"
	"testing"

	"forge-backend/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func TestComputeLineTotals(t *testing.T) {
	tests := []struct {
		name       string
		inputs     []models.LineItemInput
		wantTotals []float64
		wantSum    float64
	}{
		{
			name: "single metered item",
			inputs: []models.LineItemInput{
				{Description: "Consulting", Quantity: 3, UnitPrice: 10, UseQuantity: boolPtr(true)},
			},
			wantTotals: []float64{30},
			wantSum:    30,
		},
		{
			name: "flat fee ignores quantity",
			inputs: []models.LineItemInput{
				{Description: "Setup fee", Quantity: 99, UnitPrice: 250, UseQuantity: boolPtr(false)},
			},
			wantTotals: []float64{250},
			wantSum:    250,
		},
		{
			name: "use_quantity defaults to true",
			inputs: []models.LineItemInput{
				{Description: "Hours", Quantity: 4, UnitPrice: 85},
			},
			wantTotals: []float64{340},
			wantSum:    340,
		},
		{
			name: "negative unit price models a discount",
			inputs: []models.LineItemInput{
				{Description: "Development", Quantity: 10, UnitPrice: 100},
				{Description: "Loyalty discount", Quantity: 1, UnitPrice: -150, UseQuantity: boolPtr(false)},
			},
			wantTotals: []float64{1000, -150},
			wantSum:    850,
		},
		{
			name: "mixed flags sum correctly",
			inputs: []models.LineItemInput{
				{Description: "A", Quantity: 2, UnitPrice: 5},
				{Description: "B", Quantity: 7, UnitPrice: 40, UseQuantity: boolPtr(false)},
				{Description: "C", Quantity: 0.5, UnitPrice: 200, UseQuantity: boolPtr(true)},
			},
			wantTotals: []float64{10, 40, 100},
			wantSum:    150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := ComputeLineTotals(tt.inputs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != len(tt.inputs) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.inputs))
			}
			var sum float64
			for i, item := range items {
				if item.LineTotal != tt.wantTotals[i] {
					t.Errorf("item %d line_total = %v, want %v", i, item.LineTotal, tt.wantTotals[i])
				}
				if item.Description != tt.inputs[i].Description {
					t.Errorf("item %d description = %q, want %q (order must be preserved)", i, item.Description, tt.inputs[i].Description)
				}
				if item.Position != i {
					t.Errorf("item %d position = %d", i, item.Position)
				}
				sum += item.LineTotal
			}
			if total != tt.wantSum {
				t.Errorf("total = %v, want %v", total, tt.wantSum)
			}
			if total != sum {
				t.Errorf("total %v does not equal sum of line totals %v", total, sum)
			}
		})
	}
}

func TestComputeLineTotalsEmpty(t *testing.T) {
	_, _, err := ComputeLineTotals(nil)
	if err == nil {
		t.Fatal("expected validation error for empty line item list")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Msg != "at least one line item required" {
		t.Errorf("unexpected message %q", verr.Msg)
	}
}
