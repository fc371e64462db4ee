// Package policy holds the access rules applied to account operations.
package policy

import (
	"strconv"                    // Id formatting
	"user_admin/internal/domain" // Importing domain models

	"github.com/samber/lo" // Collection helpers
)

// Scope restricts q to the accounts caller may see.
// Non-super-admin callers always get createUserId pinned to their own id,
// whatever the request carried. Super-admin queries pass through untouched.
// q.Filters is never modified.
func Scope(q domain.ListQuery, caller domain.CallerIdentity) domain.ListQuery {
	if caller.IsSuperAdmin {
		return q // Unrestricted
	}
	// Fresh map, the request's own owner filter is overridden
	filters := lo.Assign(q.Filters, map[string]string{
		domain.FilterCreateUserID: strconv.FormatUint(caller.UserID, 10), // Pin to the caller
	})
	return domain.ListQuery{Page: q.Page, Limit: q.Limit, Filters: filters}
}

// OwnerFilter returns the createUserId constraint for single-record access,
// or nil when the caller may touch any account.
func OwnerFilter(caller domain.CallerIdentity) *uint64 {
	if caller.IsSuperAdmin {
		return nil // Any account
	}
	id := caller.UserID // Copy of the caller id
	return &id
}
