package render

import "strings"

// defaultTemplate is the built-in invoice body, written in the same
// placeholder grammar custom templates use. It is always rendered inside the
// page shell.
const defaultTemplate = `<header class="invoice-header">
  <div>
    <h1>Invoice {{invoice_number}}</h1>
    <p class="muted">Ref {{id}}</p>
    <p>Date: {{date}}</p>
  </div>
  <div class="addresses">
    <div class="address-block">
      <h2>Billed to</h2>
      <p>{{client_name}}</p>
      <p>{{client_address}}</p>
    </div>
    <div class="address-block">
      <h2>From</h2>
      <p>{{issuer_address}}</p>
    </div>
  </div>
</header>
<table class="items">
  <thead>
    <tr><th>Description</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
  </thead>
  <tbody>
    {{#each items}}
    <tr>
      <td>{{description}}</td>
      <td class="num">{{quantity}}</td>
      <td class="num">{{money unit_price}}</td>
      <td class="num">{{money line_total}}</td>
    </tr>
    {{/each}}
  </tbody>
</table>
<section class="totals">
  <div class="row"><span>Subtotal</span><span>{{money subtotal}}</span></div>
  <div class="row total"><span>Total ({{currency}})</span><span>{{money total}}</span></div>
</section>
<section class="notes">
  <p>{{legal_note}}</p>
</section>`

const shellTop = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #1a1a1a; margin: 40px; }
  h1 { font-size: 22px; margin: 0 0 4px 0; }
  h2 { font-size: 11px; text-transform: uppercase; letter-spacing: 0.05em; color: #666; margin: 0 0 4px 0; }
  .muted { color: #888; }
  .invoice-header { display: flex; justify-content: space-between; margin-bottom: 32px; }
  .addresses { display: flex; gap: 48px; text-align: right; }
  table.items { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
  table.items th { text-align: left; border-bottom: 2px solid #1a1a1a; padding: 6px 8px; }
  table.items td { border-bottom: 1px solid #ddd; padding: 6px 8px; }
  th.num, td.num { text-align: right; }
  .totals { width: 40%; margin-left: auto; }
  .totals .row { display: flex; justify-content: space-between; padding: 4px 8px; }
  .totals .total { font-weight: bold; border-top: 2px solid #1a1a1a; }
  .notes { margin-top: 40px; font-size: 10px; color: #666; }
</style>
</head>
<body>
`

const shellBottom = `
</body>
</html>
`

// wrapInShell embeds a rendered fragment in the fixed page shell
func wrapInShell(fragment string) string {
	return shellTop + fragment + shellBottom
}

// isCompleteDocument reports whether rendered HTML already carries its own
// <html> element and should be used verbatim
func isCompleteDocument(html string) bool {
	return strings.Contains(strings.ToLower(html), "<html")
}
