// Package service exposes the account administration and dashboard operations.
package service

import (
	"context"                        // Context for store calls
	"crypto/subtle"                  // Constant time digest comparison
	"errors"                         // Error matching
	"fmt"                            // Error wrapping
	"strings"                        // String trimming
	"user_admin/internal/credential" // Password digest and rotation
	"user_admin/internal/domain"     // Importing domain models
	"user_admin/internal/metrics"    // Chart shaping
	"user_admin/internal/policy"     // Access rules

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Chart titles
const (
	SalesTitle  = "Sales amount by category"
	VolumeTitle = "Sales volume by category"
)

// UserStore persists accounts
type UserStore interface {
	QueryList(ctx context.Context, q domain.ListQuery) ([]domain.Account, int64, error)
	QueryObject(ctx context.Context, id uint64, owner *uint64) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Save(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account, owner *uint64) error
	DeleteMany(ctx context.Context, ids []uint64, owner *uint64) error
	credential.PasswordStore
}

// MetricsSource supplies grouped sales totals
type MetricsSource interface {
	GroupedPriceTotals(ctx context.Context) ([]metrics.RawRow, error)
	GroupedCountTotals(ctx context.Context) ([]metrics.RawRow, error)
	Totals(ctx context.Context) (domain.Overview, error)
}

// AdminService implements the operations behind the admin endpoints.
// Every scoped operation takes the caller explicitly.
type AdminService struct {
	users    UserStore            // Account repository
	source   MetricsSource        // Sales totals
	guard    policy.DeletionGuard // Deletion rules
	rotator  *credential.Rotator  // Password changes
	digester credential.Digester  // Password digest
}

// NewAdminService wires the service to its collaborators
func NewAdminService(users UserStore, source MetricsSource, guard policy.DeletionGuard, rotator *credential.Rotator, digester credential.Digester) *AdminService {
	return &AdminService{users: users, source: source, guard: guard, rotator: rotator, digester: digester}
}

// Authenticate checks username and password and returns the active account
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.users.FindByUsername(ctx, strings.TrimSpace(username)) // Look up by login name
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized // Do not reveal which usernames exist
		}
		return nil, err
	}
	digest := s.digester.Digest(password) // Digest the supplied password
	if subtle.ConstantTimeCompare([]byte(account.Password), []byte(digest)) != 1 {
		return nil, domain.ErrUnauthorized // Wrong password
	}
	// Disabled accounts may not sign in
	if account.Status != domain.StatusActive {
		return nil, &domain.Error{Kind: domain.KindUnauthorized, Message: "account is disabled"}
	}
	return account, nil
}

// Me returns the caller's own account
func (s *AdminService) Me(ctx context.Context, caller domain.CallerIdentity) (*domain.Account, error) {
	return s.users.QueryObject(ctx, caller.UserID, nil)
}

// ListAccounts returns the page of accounts visible to caller
func (s *AdminService) ListAccounts(ctx context.Context, q domain.ListQuery, caller domain.CallerIdentity) (domain.Page[domain.Account], error) {
	scoped := policy.Scope(q, caller)                      // Pin the owner filter for non-super-admins
	accounts, total, err := s.users.QueryList(ctx, scoped) // Fetch one page
	if err != nil {
		return domain.Page[domain.Account]{}, err
	}
	return domain.NewPage(accounts, total, scoped), nil
}

// GetAccount loads one account with its roles, provided caller may see it
func (s *AdminService) GetAccount(ctx context.Context, id uint64, caller domain.CallerIdentity) (*domain.Account, error) {
	return s.users.QueryObject(ctx, id, policy.OwnerFilter(caller))
}

// SaveAccount creates account owned by caller with the digest of password
func (s *AdminService) SaveAccount(ctx context.Context, account *domain.Account, password string, caller domain.CallerIdentity) error {
	if strings.TrimSpace(account.Username) == "" {
		return domain.InvalidAccount("username must not be blank")
	}
	if strings.TrimSpace(password) == "" {
		return domain.InvalidAccount("password must not be blank")
	}
	account.ID = 0                                         // Always a new row
	account.Username = strings.TrimSpace(account.Username) // Normalized login name
	account.Password = s.digester.Digest(password)         // Store the digest only
	account.CreateUserID = caller.UserID                   // Caller owns the new account
	if err := s.users.Save(ctx, account); err != nil {
		return err
	}
	audit(caller, "Save account", logrus.Fields{"target_id": account.ID, "username": account.Username})
	return nil
}

// UpdateAccount rewrites account on behalf of caller. A blank password keeps the stored one.
func (s *AdminService) UpdateAccount(ctx context.Context, account *domain.Account, password string, caller domain.CallerIdentity) error {
	if account.ID == 0 {
		return domain.InvalidAccount("user id is required")
	}
	if strings.TrimSpace(account.Username) == "" {
		return domain.InvalidAccount("username must not be blank")
	}
	account.Username = strings.TrimSpace(account.Username) // Normalized login name
	account.Password = ""                                  // Keep the stored digest by default
	if strings.TrimSpace(password) != "" {
		account.Password = s.digester.Digest(password) // Replace with the new digest
	}
	account.CreateUserID = caller.UserID // Last writer becomes the owner
	if err := s.users.Update(ctx, account, policy.OwnerFilter(caller)); err != nil {
		return err
	}
	audit(caller, "Update account", logrus.Fields{"target_id": account.ID, "password_changed": account.Password != ""})
	return nil
}

// DeleteAccounts removes ids after the deletion guard approves them.
// A non-super-admin may only delete accounts they created.
func (s *AdminService) DeleteAccounts(ctx context.Context, ids []uint64, caller domain.CallerIdentity) error {
	if err := s.guard.Authorize(ids, caller); err != nil {
		return err // Protected or own account
	}
	if err := s.users.DeleteMany(ctx, ids, policy.OwnerFilter(caller)); err != nil {
		return err
	}
	audit(caller, "Delete accounts", logrus.Fields{"target_ids": ids})
	return nil
}

// RotatePassword changes the caller's own password and ends their session
func (s *AdminService) RotatePassword(ctx context.Context, callerID uint64, oldPassword, newPassword string) error {
	if err := s.rotator.Rotate(ctx, callerID, oldPassword, newPassword); err != nil {
		return err
	}
	audit(domain.CallerIdentity{UserID: callerID}, "Change password", nil)
	return nil
}

// Overview returns the dashboard headline totals
func (s *AdminService) Overview(ctx context.Context) (domain.Overview, error) {
	return s.source.Totals(ctx)
}

// SalesChartData shapes per-category sales amounts into a pie and a bar chart
func (s *AdminService) SalesChartData(ctx context.Context) ([]metrics.Chart, error) {
	rows, err := s.source.GroupedPriceTotals(ctx) // Amount per category
	if err != nil {
		return nil, err
	}
	return chartsFrom(SalesTitle, rows)
}

// VolumeChartData shapes per-category units sold into a pie and a bar chart
func (s *AdminService) VolumeChartData(ctx context.Context) ([]metrics.Chart, error) {
	rows, err := s.source.GroupedCountTotals(ctx) // Units per category
	if err != nil {
		return nil, err
	}
	return chartsFrom(VolumeTitle, rows)
}

// chartsFrom normalizes rows and shapes them into the pie and bar pair
func chartsFrom(title string, rows []metrics.RawRow) ([]metrics.Chart, error) {
	entries, err := metrics.Normalize(rows) // Fail loud on a malformed row
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err) // Keep the kind for errors.Is
	}
	return metrics.Charts(title, entries), nil
}

// audit records an account mutation
func audit(caller domain.CallerIdentity, operation string, fields logrus.Fields) {
	logrus.WithFields(fields).
		WithField("user_id", caller.UserID). // Acting account
		WithField("operation", operation).   // What was done
		Info("Audit")
}
