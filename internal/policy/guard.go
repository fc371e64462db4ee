package policy

import (
	"user_admin/internal/domain" // Importing domain models

	"github.com/samber/lo" // Collection helpers
)

// DefaultProtectedID is the root account that can never be deleted
const DefaultProtectedID uint64 = 1

// DeletionGuard vets delete requests against the protected-identity rules
type DeletionGuard struct {
	ProtectedID uint64 // Reserved root account id
}

// NewDeletionGuard returns a guard protecting protectedID
func NewDeletionGuard(protectedID uint64) DeletionGuard {
	return DeletionGuard{ProtectedID: protectedID}
}

// Authorize refuses deletion of the protected account and of the caller's own account.
// Both rules apply to every caller, super-admin included, and every reason that
// holds is reported on the returned error.
func (g DeletionGuard) Authorize(targetIDs []uint64, caller domain.CallerIdentity) error {
	var reasons []domain.DenialReason // Every rule that applies
	// Check if the root account is targeted
	if lo.Contains(targetIDs, g.ProtectedID) {
		reasons = append(reasons, domain.ReasonProtectedAccount)
	}
	// Check if the caller targets themselves
	if lo.Contains(targetIDs, caller.UserID) {
		reasons = append(reasons, domain.ReasonSelfDeletion)
	}
	if len(reasons) > 0 {
		return domain.DeletionDenied(reasons...)
	}
	return nil
}
