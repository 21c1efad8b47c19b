package render

import (
	"forge-backend/internal/models"
)

// RenderResult is the outcome of expanding a template. Degraded renders keep
// the request alive by carrying the original template text in HTML; Cause
// holds the expansion error so callers can log or reject the output.
type RenderResult struct {
	HTML     string
	Degraded bool
	Cause    error
}

// RenderDocument expands the resolved template against the invoice's render
// context and applies the layout policy: the default template always sits in
// the fixed page shell; a custom template is used verbatim when its rendered
// output is already a full document, and wrapped as a fragment otherwise.
//
// Interpolated fields are not HTML-escaped. Custom templates are authored by
// the invoice owner in a single-tenant setup, and escaping would break
// templates that carry markup in data fields.
//
// A template that fails to expand degrades to its raw, unexpanded text
// instead of failing the render.
func RenderDocument(tpl ResolvedTemplate, inv models.Invoice, items []models.LineItem) RenderResult {
	scope := BuildContext(inv, items)

	body, err := Expand(tpl.HTML, scope)
	result := RenderResult{}
	if err != nil {
		body = tpl.HTML
		result.Degraded = true
		result.Cause = err
	}

	if !tpl.Custom {
		result.HTML = wrapInShell(body)
		return result
	}
	if isCompleteDocument(body) {
		result.HTML = body
		return result
	}
	result.HTML = wrapInShell(body)
	return result
}
