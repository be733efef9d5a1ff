package shared

import (
	"context"
	"net/http"
)

// Roles asserted by the upstream gateway. Token issuance and verification
// happen before requests reach this service; the identity headers are
// trusted as given.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Identity headers set by the upstream proxy.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

// Identity describes the authenticated caller.
type Identity struct {
	UserID string
	Name   string
	Role   string
}

// Authenticated reports whether the request carried a user id.
func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// HasAnyRole reports whether the identity holds one of the given roles.
func (id Identity) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if id.Role == role {
			return true
		}
	}
	return false
}

type identityContextKey struct{}

// ContextWithIdentity stores the identity on the context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext retrieves the identity, zero valued when absent.
func IdentityFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityContextKey{}).(Identity)
	return id
}

// IdentityFromRequest extracts the caller identity from trusted headers.
func IdentityFromRequest(r *http.Request) Identity {
	return Identity{
		UserID: r.Header.Get(HeaderUserID),
		Name:   r.Header.Get(HeaderUserName),
		Role:   r.Header.Get(HeaderUserRole),
	}
}
