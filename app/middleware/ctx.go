package middleware

import (
	"context"

	"rps-backend/app/models"
)

type ctxKey int

const principalKey ctxKey = 1

// Principal is the authenticated identity for the current request. Role and
// verification state come from the user store at request time, not from the
// token, so a role change takes effect on the next call.
type Principal struct {
	UserID   uint
	Username string
	Role     models.Role
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func GetPrincipal(ctx context.Context) *Principal {
	if v := ctx.Value(principalKey); v != nil {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}
	return nil
}
