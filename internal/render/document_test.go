package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"forge-backend/internal/models"

	"github.com/google/uuid"
)

func testInvoice() (models.Invoice, []models.LineItem) {
	id := uuid.MustParse("5bd9e7bd-3c33-4b14-9dbc-65b6c2b4f0a1")
	inv := models.Invoice{
		ID:            id,
		InvoiceNumber: "IN-00007",
		ClientName:    "Acme GmbH",
		ClientAddress: "1 Industrieweg, Berlin",
		IssuerAddress: "9 Harbour Rd, Dublin",
		Currency:      "EUR",
		Amount:        234.5,
		TotalAmount:   234.5,
		Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	items := []models.LineItem{
		{InvoiceID: id, Description: "Design work", Quantity: 2, UnitPrice: 100, UseQuantity: true, LineTotal: 200, Position: 0},
		{InvoiceID: id, Description: "Hosting", Quantity: 1, UnitPrice: 34.5, UseQuantity: false, LineTotal: 34.5, Position: 1},
	}
	return inv, items
}

func TestRenderDocumentDefault(t *testing.T) {
	inv, items := testInvoice()
	res := RenderDocument(ResolvedTemplate{HTML: defaultTemplate}, inv, items)
	if res.Degraded {
		t.Fatalf("default template must not degrade: %v", res.Cause)
	}
	if !strings.HasPrefix(res.HTML, "<!doctype html>") {
		t.Error("default template must render inside the page shell")
	}
	for _, want := range []string{
		"IN-00007", "2026-03-14", "Acme GmbH", "1 Industrieweg, Berlin",
		"9 Harbour Rd, Dublin", "Design work", "Hosting", "234,50", LegalNote,
	} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("rendered document missing %q", want)
		}
	}
	// rows appear in line item order
	if strings.Index(res.HTML, "Design work") > strings.Index(res.HTML, "Hosting") {
		t.Error("item rows out of order")
	}
}

func TestRenderDocumentCustomFragmentIsWrapped(t *testing.T) {
	inv, items := testInvoice()
	res := RenderDocument(ResolvedTemplate{HTML: "<p>{{client_name}}</p>", Custom: true}, inv, items)
	if res.Degraded {
		t.Fatalf("unexpected degrade: %v", res.Cause)
	}
	if !strings.HasPrefix(res.HTML, "<!doctype html>") {
		t.Error("fragment must be wrapped in the page shell")
	}
	if !strings.Contains(res.HTML, "<p>Acme GmbH</p>") {
		t.Errorf("fragment not expanded: %q", res.HTML)
	}
}

func TestRenderDocumentCustomFullDocumentVerbatim(t *testing.T) {
	inv, items := testInvoice()
	tpl := "<HTML><body>{{invoice_number}}</body></HTML>"
	res := RenderDocument(ResolvedTemplate{HTML: tpl, Custom: true}, inv, items)
	if res.Degraded {
		t.Fatalf("unexpected degrade: %v", res.Cause)
	}
	if strings.HasPrefix(res.HTML, "<!doctype html>") {
		t.Error("full documents must be used verbatim, not wrapped")
	}
	if res.HTML != "<HTML><body>IN-00007</body></HTML>" {
		t.Errorf("got %q", res.HTML)
	}
}

func TestRenderDocumentDegradesToRawText(t *testing.T) {
	inv, items := testInvoice()
	tpl := "{{#each items}}{{description}}" // unclosed block
	res := RenderDocument(ResolvedTemplate{HTML: tpl, Custom: true}, inv, items)
	if !res.Degraded {
		t.Fatal("malformed template must degrade, not fail")
	}
	if res.Cause == nil {
		t.Error("degraded result must carry its cause")
	}
	if !strings.Contains(res.HTML, tpl) {
		t.Errorf("degraded output must contain the raw template text, got %q", res.HTML)
	}
}

func TestRenderDocumentIdempotent(t *testing.T) {
	inv, items := testInvoice()
	a := RenderDocument(ResolvedTemplate{HTML: defaultTemplate}, inv, items)
	b := RenderDocument(ResolvedTemplate{HTML: defaultTemplate}, inv, items)
	if !bytes.Equal([]byte(a.HTML), []byte(b.HTML)) {
		t.Error("rendering the same inputs twice must produce identical output")
	}
}

func TestRenderDocumentSubtotalRecomputed(t *testing.T) {
	inv, items := testInvoice()
	inv.TotalAmount = 999999 // stored total drifted
	res := RenderDocument(ResolvedTemplate{HTML: "{{money subtotal}}|{{money total}}", Custom: true}, inv, items)
	if res.Degraded {
		t.Fatalf("unexpected degrade: %v", res.Cause)
	}
	if !strings.Contains(res.HTML, "234,50|999.999,00") {
		t.Errorf("subtotal must come from current line totals, got %q", res.HTML)
	}
}
