package credential

import (
	"context"
	"fmt"
	"strings"

	"user_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

// PasswordStore performs the conditional password write
type PasswordStore interface {
	// CompareAndSetPassword replaces the digest of userID with newDigest only
	// when the stored digest equals oldDigest, returning the rows affected.
	CompareAndSetPassword(ctx context.Context, userID uint64, oldDigest, newDigest string) (int64, error)
}

// SessionInvalidator forces an account to authenticate again
type SessionInvalidator interface {
	Invalidate(ctx context.Context, userID uint64) error
}

// Flags exposes deployment switches consulted by rotation
type Flags interface {
	IsRestrictedEnvironment() bool
}

// Rotator changes the caller's own password
type Rotator struct {
	store    PasswordStore
	sessions SessionInvalidator
	flags    Flags
	digester Digester
}

// NewRotator wires a Rotator to its collaborators
func NewRotator(store PasswordStore, sessions SessionInvalidator, flags Flags, digester Digester) *Rotator {
	return &Rotator{store: store, sessions: sessions, flags: flags, digester: digester}
}

// Rotate verifies oldPlain and stores newPlain for callerID in one conditional write.
// The caller's session is invalidated only after that write succeeds.
func (r *Rotator) Rotate(ctx context.Context, callerID uint64, oldPlain, newPlain string) error {
	if r.flags.IsRestrictedEnvironment() {
		return domain.ErrEnvironmentLocked
	}
	if strings.TrimSpace(newPlain) == "" {
		return domain.ErrEmptyNewPassword
	}

	oldDigest := r.digester.Digest(oldPlain)
	newDigest := r.digester.Digest(newPlain)

	affected, err := r.store.CompareAndSetPassword(ctx, callerID, oldDigest, newDigest)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if affected == 0 {
		return domain.ErrWrongOldPassword
	}

	if err := r.sessions.Invalidate(ctx, callerID); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": callerID,
			"error":   err.Error(),
		}).Error("Session invalidation after password change failed")
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}
