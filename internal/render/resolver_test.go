package render

import (
	"context"
	"errors"
	"testing"

	"forge-backend/internal/billing"
	"forge-backend/internal/repositories"

	"github.com/google/uuid"
)

type fakeTemplateStore struct {
	templates map[uuid.UUID]struct {
		owner uuid.UUID
		html  string
	}
	err error
}

func (s *fakeTemplateStore) GetOwned(ctx context.Context, id, userID uuid.UUID) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	t, ok := s.templates[id]
	if !ok || t.owner != userID {
		return "", repositories.ErrNotFound
	}
	return t.html, nil
}

func newFakeStore(owner, id uuid.UUID, html string) *fakeTemplateStore {
	return &fakeTemplateStore{
		templates: map[uuid.UUID]struct {
			owner uuid.UUID
			html  string
		}{
			id: {owner: owner, html: html},
		},
	}
}

func TestResolveNilIDUsesDefault(t *testing.T) {
	r := NewResolver(&fakeTemplateStore{})
	got, err := r.Resolve(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Custom {
		t.Error("nil template id must resolve to the default template")
	}
	if got.HTML != defaultTemplate {
		t.Error("expected the built-in default template")
	}
}

func TestResolveOwnedTemplate(t *testing.T) {
	owner := uuid.New()
	tplID := uuid.New()
	r := NewResolver(newFakeStore(owner, tplID, "<p>mine</p>"))

	got, err := r.Resolve(context.Background(), owner, &tplID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Custom || got.HTML != "<p>mine</p>" {
		t.Errorf("expected the custom template, got %+v", got)
	}
}

func TestResolveMissDegradesToDefault(t *testing.T) {
	owner := uuid.New()
	tplID := uuid.New()
	stranger := uuid.New()
	r := NewResolver(newFakeStore(stranger, tplID, "<p>not yours</p>"))

	// render-time ownership miss is not an error
	got, err := r.Resolve(context.Background(), owner, &tplID)
	if err != nil {
		t.Fatalf("render-time miss must not error: %v", err)
	}
	if got.Custom {
		t.Error("foreign template must degrade to the default")
	}
}

func TestResolveInfrastructureErrorSurfaces(t *testing.T) {
	boom := errors.New("connection reset")
	r := NewResolver(&fakeTemplateStore{err: boom})
	id := uuid.New()
	if _, err := r.Resolve(context.Background(), uuid.New(), &id); !errors.Is(err, boom) {
		t.Errorf("infrastructure failures must surface, got %v", err)
	}
}

func TestValidateOwnership(t *testing.T) {
	owner := uuid.New()
	tplID := uuid.New()
	r := NewResolver(newFakeStore(owner, tplID, "<p>mine</p>"))

	if err := r.ValidateOwnership(context.Background(), owner, &tplID); err != nil {
		t.Errorf("owned template must validate: %v", err)
	}
	if err := r.ValidateOwnership(context.Background(), owner, nil); err != nil {
		t.Errorf("nil id must validate: %v", err)
	}

	// creation-time check is strict: same miss that degrades at render time
	// is a hard validation error here
	stranger := uuid.New()
	err := r.ValidateOwnership(context.Background(), stranger, &tplID)
	var verr *billing.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Msg != "invalid template" {
		t.Errorf("unexpected message %q", verr.Msg)
	}
}
