package services

import (
	"context"
	"errors"
	"testing"

	"forge-backend/internal/billing"
	"forge-backend/internal/models"
)

func TestRegisterRejectsBadInput(t *testing.T) {
	s := NewUserService(nil, nil, 7)

	cases := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"empty email", models.RegisterRequest{Email: "", Password: "longenough"}},
		{"no at sign", models.RegisterRequest{Email: "nobody", Password: "longenough"}},
		{"short password", models.RegisterRequest{Email: "a@b.dev", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := s.Register(context.Background(), tc.req)
			var verr *billing.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSessionDurationDefault(t *testing.T) {
	s := NewUserService(nil, nil, 0)
	if got := s.SessionDuration().Hours(); got != 7*24 {
		t.Errorf("zero config must default to 7 days, got %v hours", got)
	}
	s = NewUserService(nil, nil, 30)
	if got := s.SessionDuration().Hours(); got != 30*24 {
		t.Errorf("got %v hours", got)
	}
}
