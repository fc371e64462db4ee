package policy

import (
	"testing"

	"user_admin/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestScope_NonSuperAdminPinsOwner(t *testing.T) {
	in := domain.NewListQuery(2, 20, map[string]string{
		domain.FilterCreateUserID: "1", // attempt to widen visibility
		domain.FilterUsername:     "bob",
	})
	out := Scope(in, domain.NewCaller(7, 1))

	require.Equal(t, "7", out.Filters[domain.FilterCreateUserID])
	require.Equal(t, "bob", out.Filters[domain.FilterUsername])
	require.Equal(t, 2, out.Page)
	require.Equal(t, 20, out.Limit)
	// input left untouched
	require.Equal(t, "1", in.Filters[domain.FilterCreateUserID])
}

func TestScope_NonSuperAdminWithoutFilters(t *testing.T) {
	out := Scope(domain.ListQuery{Page: 1, Limit: 10}, domain.NewCaller(3, 1))
	require.Equal(t, map[string]string{domain.FilterCreateUserID: "3"}, out.Filters)
}

func TestScope_SuperAdminPassesThrough(t *testing.T) {
	in := domain.NewListQuery(1, 10, map[string]string{domain.FilterUsername: "a"})
	out := Scope(in, domain.NewCaller(1, 1))
	require.Equal(t, in, out)
	_, injected := out.Filters[domain.FilterCreateUserID]
	require.False(t, injected)
}

func TestScope_SuperAdminKeepsOwnFilter(t *testing.T) {
	in := domain.NewListQuery(1, 10, map[string]string{domain.FilterCreateUserID: "9"})
	require.Equal(t, "9", Scope(in, domain.NewCaller(1, 1)).Filters[domain.FilterCreateUserID])
}

func TestOwnerFilter(t *testing.T) {
	require.Nil(t, OwnerFilter(domain.NewCaller(1, 1)))
	f := OwnerFilter(domain.NewCaller(5, 1))
	require.NotNil(t, f)
	require.Equal(t, uint64(5), *f)
}

func TestDeletionGuard(t *testing.T) {
	guard := NewDeletionGuard(DefaultProtectedID)
	root := domain.NewCaller(1, 1)
	admin := domain.NewCaller(7, 1)

	tests := []struct {
		name    string
		ids     []uint64
		caller  domain.CallerIdentity
		wantErr error
	}{
		{"protected by super-admin", []uint64{1, 4}, root, domain.ErrProtectedAccount},
		{"protected by other", []uint64{4, 1}, admin, domain.ErrProtectedAccount},
		{"self", []uint64{7}, admin, domain.ErrSelfDeletion},
		{"self among others", []uint64{3, 7, 9}, admin, domain.ErrSelfDeletion},
		{"allowed", []uint64{3, 9}, admin, nil},
		{"empty", nil, admin, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Authorize(tt.ids, tt.caller)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeletionGuard_ReportsBothReasons(t *testing.T) {
	err := NewDeletionGuard(1).Authorize([]uint64{1}, domain.NewCaller(1, 1))
	require.ErrorIs(t, err, domain.ErrProtectedAccount)
	require.ErrorIs(t, err, domain.ErrSelfDeletion)
}

func TestDeletionGuard_CustomProtectedID(t *testing.T) {
	guard := NewDeletionGuard(42)
	require.NoError(t, guard.Authorize([]uint64{1}, domain.NewCaller(7, 1)))
	require.ErrorIs(t, guard.Authorize([]uint64{42}, domain.NewCaller(7, 1)), domain.ErrProtectedAccount)
}
