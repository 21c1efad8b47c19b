package render

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"forge-backend/internal/models"
)

func TestNativeBackendProducesPDF(t *testing.T) {
	inv, items := testInvoice()
	b := NewNativeBackend()

	out, err := b.Render(context.Background(), Document{Invoice: inv, Items: items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !validPDF(out) {
		t.Fatal("output does not start with %PDF")
	}

	// output is uncompressed, so document text is greppable
	for _, want := range []string{
		inv.ID.String(), "IN-00007", "2026-03-14", "Acme GmbH",
		"1 Industrieweg, Berlin", "Design work", "Hosting", "234,50",
	} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("PDF missing %q", want)
		}
	}
	if bytes.Index(out, []byte("Design work")) > bytes.Index(out, []byte("Hosting")) {
		t.Error("item rows out of order")
	}
}

// contentStreams pulls the uncompressed stream bodies out of a PDF in file
// order. gofpdf writes resource dictionaries in map iteration order, so two
// renders of the same invoice differ as whole files; the page content
// streams are what must match.
func contentStreams(pdf []byte) [][]byte {
	var streams [][]byte
	rest := pdf
	for {
		start := bytes.Index(rest, []byte(">>\nstream\n"))
		if start < 0 {
			return streams
		}
		rest = rest[start+len(">>\nstream\n"):]
		end := bytes.Index(rest, []byte("endstream"))
		if end < 0 {
			return streams
		}
		streams = append(streams, rest[:end])
		rest = rest[end:]
	}
}

func TestNativeBackendIdempotent(t *testing.T) {
	inv, items := testInvoice()
	b := NewNativeBackend()

	first, err := b.Render(context.Background(), Document{Invoice: inv, Items: items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.Render(context.Background(), Document{Invoice: inv, Items: items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	firstStreams := contentStreams(first)
	secondStreams := contentStreams(second)
	if len(firstStreams) == 0 {
		t.Fatal("no content streams found in rendered PDF")
	}
	if len(firstStreams) != len(secondStreams) {
		t.Fatalf("stream count differs between renders: %d vs %d", len(firstStreams), len(secondStreams))
	}
	for i := range firstStreams {
		if !bytes.Equal(firstStreams[i], secondStreams[i]) {
			t.Errorf("content stream %d differs between renders of the same invoice", i)
		}
	}
}

func TestNativeBackendPaginatesLongInvoices(t *testing.T) {
	inv, _ := testInvoice()
	var items []models.LineItem
	for i := 0; i < 120; i++ {
		items = append(items, models.LineItem{
			Description: fmt.Sprintf("Task %03d", i),
			Quantity:    1,
			UnitPrice:   10,
			UseQuantity: true,
			LineTotal:   10,
			Position:    i,
		})
	}

	b := NewNativeBackend()
	out, err := b.Render(context.Background(), Document{Invoice: inv, Items: items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !validPDF(out) {
		t.Fatal("output does not start with %PDF")
	}
	// 120 rows cannot fit one A4 page; the caption row is repeated at the
	// top of every page, so it must appear more than once
	if bytes.Count(out, []byte("Description")) < 2 {
		t.Error("expected the column caption row on a second page")
	}
	if !bytes.Contains(out, []byte("Task 119")) {
		t.Error("last row missing from paginated output")
	}
}
