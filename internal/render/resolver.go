package render

import (
	"context"
	"errors"

	"forge-backend/internal/billing"
	"forge-backend/internal/repositories"

	"github.com/google/uuid"
)

// TemplateStore is the slice of the template repository the resolver needs
type TemplateStore interface {
	GetOwned(ctx context.Context, id, userID uuid.UUID) (html string, err error)
}

// ResolvedTemplate is the template a render will expand: either a
// user-authored custom template or the built-in default
type ResolvedTemplate struct {
	HTML   string
	Custom bool
}

// Resolver picks between a stored custom template and the built-in default
type Resolver struct {
	store TemplateStore
}

func NewResolver(store TemplateStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the template to render with. A nil id, or an id that no
// longer resolves for this owner (deleted, or never theirs), degrades to the
// default template rather than failing: an invoice must always render even
// if its template went away after creation. Only infrastructure failures are
// returned as errors.
func (r *Resolver) Resolve(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID) (ResolvedTemplate, error) {
	if templateID == nil {
		return ResolvedTemplate{HTML: defaultTemplate}, nil
	}

	html, err := r.store.GetOwned(ctx, *templateID, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ResolvedTemplate{HTML: defaultTemplate}, nil
		}
		return ResolvedTemplate{}, err
	}
	return ResolvedTemplate{HTML: html, Custom: true}, nil
}

// ValidateOwnership is the strict creation/update-time counterpart of
// Resolve: an explicitly supplied template id that is not owned by the
// caller is a hard validation error, so invoices never get created pointing
// at dangling or foreign templates.
func (r *Resolver) ValidateOwnership(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID) error {
	if templateID == nil {
		return nil
	}
	if _, err := r.store.GetOwned(ctx, *templateID, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return billing.NewValidationError("invalid template")
		}
		return err
	}
	return nil
}
