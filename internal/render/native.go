package render

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"forge-backend/internal/billing"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	nativePageBottom = 270 // mm, A4 portrait usable height before footer
	nativeRowHeight  = 7
)

// NativeBackend renders the invoice with drawing primitives, no external
// process. Used when no HTML converter is configured.
type NativeBackend struct{}

func NewNativeBackend() *NativeBackend {
	return &NativeBackend{}
}

func (b *NativeBackend) Name() string {
	return "native"
}

func (b *NativeBackend) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: err}
	}

	inv := doc.Invoice
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	// a pinned creation date and uncompressed streams keep the document
	// content stable across renders of the same invoice
	pdf.SetCreationDate(inv.Date)
	pdf.SetCompression(false)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Invoice %s", inv.InvoiceNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(190, 5, fmt.Sprintf("Ref %s", inv.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(190, 5, fmt.Sprintf("Date: %s", inv.Date.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Parties
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 6, "Billed to", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "From", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 5, inv.ClientName, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 5, inv.IssuerAddress, "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 5, inv.ClientAddress, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	b.writeItemHeader(pdf)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range doc.Items {
		if pdf.GetY()+nativeRowHeight > nativePageBottom {
			pdf.AddPage()
			b.writeItemHeader(pdf)
			pdf.SetFont("Helvetica", "", 10)
		}
		desc := item.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		pdf.CellFormat(90, nativeRowHeight, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, nativeRowHeight, strconv.FormatFloat(item.Quantity, 'f', -1, 64), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, nativeRowHeight, billing.FormatMoney(item.UnitPrice, inv.Currency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, nativeRowHeight, billing.FormatMoney(item.LineTotal, inv.Currency), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, fmt.Sprintf("Total (%s)", inv.Currency), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, billing.FormatMoney(inv.TotalAmount, inv.Currency), "T", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(190, 4, LegalNote, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &BackendError{Backend: b.Name(), Err: err}
	}
	out := buf.Bytes()
	if !validPDF(out) {
		return nil, &BackendError{Backend: b.Name(), Diagnostic: "produced invalid PDF content"}
	}
	return out, nil
}

func (b *NativeBackend) writeItemHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Unit price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "R", true, 0, "")
}
