// Package auth adapts the external identity provider. Nothing outside this
// package sees provider tokens or cookies.
package auth

import (
	"context"
	"net/http"
)

const (
	RoleBusiness = "business"
	RoleAdmin    = "admin"
)

type Identity struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"emailVerified"`
}

func (i *Identity) HasRole(roles ...string) bool {
	if i == nil {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// SessionProvider resolves the caller of a request. It returns nil and no
// error when there is no session; an error means the session is present
// but unusable.
type SessionProvider interface {
	CurrentIdentity(r *http.Request) (*Identity, error)
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}
