package shared

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderUserID, "u1")
	req.Header.Set(HeaderUserName, "Aye Chan")
	req.Header.Set(HeaderUserRole, RoleManager)

	id := IdentityFromRequest(req)
	require.Equal(t, Identity{UserID: "u1", Name: "Aye Chan", Role: RoleManager}, id)
	require.True(t, id.Authenticated())

	anon := IdentityFromRequest(httptest.NewRequest("GET", "/", nil))
	require.False(t, anon.Authenticated())
}

func TestHasAnyRole(t *testing.T) {
	id := Identity{UserID: "u1", Role: RoleManager}
	require.True(t, id.HasAnyRole(RoleAdmin, RoleManager))
	require.False(t, id.HasAnyRole(RoleAdmin))
	require.False(t, id.HasAnyRole())
}

func TestIdentityContextRoundTrip(t *testing.T) {
	ctx := ContextWithIdentity(context.Background(), Identity{UserID: "u1", Role: RoleStaff})
	require.Equal(t, "u1", IdentityFromContext(ctx).UserID)
	require.False(t, IdentityFromContext(context.Background()).Authenticated())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 20, 45)
	require.Equal(t, 2, p.Page)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 20, p.Offset())

	defaulted := NewPagination(0, 0, 5)
	require.Equal(t, 1, defaulted.Page)
	require.Equal(t, 20, defaulted.PerPage)
	require.Equal(t, 1, defaulted.TotalPages)
	require.Equal(t, 0, defaulted.Offset())
}
