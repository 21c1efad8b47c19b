package render

import (
	"strings"
	"testing"
)

func testScope() *Scope {
	return NewScope(map[string]any{
		"invoice_number": "IN-00042",
		"client_name":    "Acme GmbH",
		"currency":       "EUR",
		"total":          float64(1234.5),
		"items": []map[string]any{
			{"description": "Design", "quantity": float64(2), "unit_price": float64(100), "line_total": float64(200), "currency": "EUR"},
			{"description": "Hosting", "quantity": float64(1), "unit_price": float64(34.5), "line_total": float64(34.5), "currency": "EUR"},
		},
	})
}

func TestExpandScalar(t *testing.T) {
	got, err := Expand("Invoice {{invoice_number}} for {{client_name}}", testScope())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Invoice IN-00042 for Acme GmbH"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExpandDoesNotEscapeHTML(t *testing.T) {
	scope := NewScope(map[string]any{"client_name": `<b>Acme & Sons</b>`})
	got, err := Expand("{{client_name}}", scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `<b>Acme & Sons</b>` {
		t.Errorf("interpolation must stay unescaped, got %q", got)
	}
}

func TestExpandMissingFieldIsEmpty(t *testing.T) {
	got, err := Expand("[{{nope}}]", testScope())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "[]" {
		t.Errorf("got %q, want []", got)
	}
}

func TestExpandEach(t *testing.T) {
	got, err := Expand("{{#each items}}{{description}};{{/each}}", testScope())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Design;Hosting;" {
		t.Errorf("items must expand in order, got %q", got)
	}
}

func TestExpandEachOuterScopeFallthrough(t *testing.T) {
	scope := NewScope(map[string]any{
		"currency": "GBP",
		"items": []map[string]any{
			{"description": "A"},
		},
	})
	got, err := Expand("{{#each items}}{{description}}/{{currency}}{{/each}}", scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A/GBP" {
		t.Errorf("outer currency must be visible inside the loop, got %q", got)
	}
}

func TestExpandMoneyHelper(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		want string
	}{
		{"context currency", "{{money total}}", "1.234,50"},
		{"explicit override", `{{money total "USD"}}`, "1,234.50"},
		{"numeric literal", `{{money 42 "USD"}}`, "42.00"},
		{"inside each", "{{#each items}}{{money line_total}} {{/each}}", "200,00 34,50 "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.tpl, testScope())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandErrors(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
	}{
		{"unterminated placeholder", "hello {{client_name"},
		{"unclosed each", "{{#each items}}{{description}}"},
		{"stray close", "{{/each}}"},
		{"unknown helper", "{{frobnicate client_name}}"},
		{"each over scalar", "{{#each client_name}}x{{/each}}"},
		{"money without resolvable amount", "{{money bogus_field}}"},
		{"money with too many args", `{{money total "EUR" extra}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Expand(tt.tpl, testScope()); err == nil {
				t.Errorf("expected error for %q", tt.tpl)
			}
		})
	}
}

func TestExpandNestedEach(t *testing.T) {
	scope := NewScope(map[string]any{
		"groups": []map[string]any{
			{
				"label": "g1",
				"items": []map[string]any{{"description": "x"}, {"description": "y"}},
			},
		},
	})
	got, err := Expand("{{#each groups}}{{label}}:{{#each items}}{{description}}{{/each}};{{/each}}", scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "g1:xy;" {
		t.Errorf("got %q", got)
	}
}

func TestExpandLeavesPlainTextAlone(t *testing.T) {
	tpl := "no placeholders here, just text with } and { braces"
	got, err := Expand(tpl, testScope())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tpl {
		t.Errorf("got %q", got)
	}
	if strings.Contains(got, "{{") {
		t.Error("nothing to expand")
	}
}
