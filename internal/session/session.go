// Package session carries the authenticated caller through a request context.
package session

import (
	"context"

	"markova/internal/domain"
)

// Session is the caller identity established from a verified token.
type Session struct {
	UserID string
	Email  string
	Role   domain.UserRole
	Locale string
}

func (s Session) IsAdmin() bool { return s.Role == domain.UserRoleAdmin }

type ctxKey struct{}

// With returns a copy of ctx carrying s.
func With(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From returns the session stored in ctx, if any.
func From(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok && s.UserID != ""
}
