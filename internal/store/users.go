// Package store persists accounts and reads sales totals through gorm.
package store

import (
	"context"                    // Context for queries
	"errors"                     // Error matching
	"fmt"                        // Error wrapping
	"strconv"                    // Id parsing
	"user_admin/internal/domain" // Importing domain models

	"github.com/samber/lo" // Collection helpers
	"gorm.io/gorm"         // GORM ORM library
)

// UserStore is the gorm-backed account repository
type UserStore struct {
	db *gorm.DB // Database handle
}

// NewUserStore wraps db
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// QueryList returns one page of accounts matching q and the total match count
func (s *UserStore) QueryList(ctx context.Context, q domain.ListQuery) ([]domain.Account, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.Account{}) // Start building the query
	if username := q.Filters[domain.FilterUsername]; username != "" {
		query = query.Where("username LIKE ?", "%"+username+"%") // Partial username match
	}
	if owner := q.Filters[domain.FilterCreateUserID]; owner != "" {
		id, err := strconv.ParseUint(owner, 10, 64) // Owner id from the filter
		if err != nil {
			// An unparsable owner never matches anything
			return []domain.Account{}, 0, nil
		}
		query = query.Where("create_user_id = ?", id) // Owner constraint
	}
	if status := q.Filters[domain.FilterStatus]; status != "" {
		query = query.Where("status = ?", status) // Exact status match
	}
	query = query.Session(&gorm.Session{}) // Reusable for both count and page

	var total int64 // Total matching accounts
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}
	var accounts []domain.Account // Accounts on this page
	// Newest first, then paginate
	if err := query.Order("user_id desc").Offset(q.Offset()).Limit(q.Limit).Find(&accounts).Error; err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, total, nil
}

// QueryObject loads one account with its role ids.
// When owner is set the account must have been created by that user.
func (s *UserStore) QueryObject(ctx context.Context, id uint64, owner *uint64) (*domain.Account, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", id) // Target account
	if owner != nil {
		query = query.Where("create_user_id = ?", *owner) // Caller may only see own accounts
	}
	var account domain.Account // Fetch account from database
	if err := query.First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound // Missing or outside the caller's scope
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	roleIDs, err := s.roleIDs(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	account.RoleIDs = roleIDs // Attach role links
	return &account, nil
}

// FindByUsername loads the account used for login
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	return &account, nil
}

// Save inserts account and its role links atomically
func (s *UserStore) Save(ctx context.Context, account *domain.Account) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.InvalidAccount("username already exists") // Unique username index
			}
			return fmt.Errorf("create account: %w", err)
		}
		return s.replaceRoles(tx, account.ID, account.RoleIDs) // Link roles in the same transaction
	})
}

// Update writes profile fields and role links. The password column is only
// written when account.Password holds a new digest. When owner is set the
// account must have been created by that user.
func (s *UserStore) Update(ctx context.Context, account *domain.Account, owner *uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&domain.Account{}).Where("user_id = ?", account.ID)
		if owner != nil {
			query = query.Where("create_user_id = ?", *owner) // Caller may only touch own accounts
		}
		var matched int64
		if err := query.Count(&matched).Error; err != nil {
			return fmt.Errorf("update account: %w", err)
		}
		if matched == 0 {
			return domain.ErrNotFound // Missing or outside the caller's scope
		}
		fields := map[string]any{
			"username":       account.Username,
			"email":          account.Email,
			"mobile":         account.Mobile,
			"status":         account.Status,
			"create_user_id": account.CreateUserID,
		}
		if account.Password != "" {
			fields["password"] = account.Password // Only when a new digest was supplied
		}
		if err := tx.Model(&domain.Account{}).Where("user_id = ?", account.ID).Updates(fields).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.InvalidAccount("username already exists")
			}
			return fmt.Errorf("update account: %w", err)
		}
		return s.replaceRoles(tx, account.ID, account.RoleIDs)
	})
}

// DeleteMany removes the accounts and their role links atomically.
// When owner is set every account must have been created by that user,
// otherwise nothing is deleted and NOT_FOUND is returned.
func (s *UserStore) DeleteMany(ctx context.Context, ids []uint64, owner *uint64) error {
	ids = lo.Uniq(ids) // Repeated ids count once
	if len(ids) == 0 {
		return nil // Nothing requested
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&domain.Account{}).Where("user_id IN ?", ids)
		if owner != nil {
			query = query.Where("create_user_id = ?", *owner) // Caller may only delete own accounts
		}
		var matched int64
		if err := query.Count(&matched).Error; err != nil {
			return fmt.Errorf("delete accounts: %w", err)
		}
		if matched < int64(len(ids)) {
			return domain.ErrNotFound // Some id is missing or outside the caller's scope
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&domain.UserRole{}).Error; err != nil {
			return fmt.Errorf("delete roles: %w", err)
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&domain.Account{}).Error; err != nil {
			return fmt.Errorf("delete accounts: %w", err)
		}
		return nil
	})
}

// CompareAndSetPassword swaps the digest in a single conditional update
func (s *UserStore) CompareAndSetPassword(ctx context.Context, userID uint64, oldDigest, newDigest string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("user_id = ? AND password = ?", userID, oldDigest). // Only while the old digest is current
		Update("password", newDigest)
	if res.Error != nil {
		return 0, fmt.Errorf("compare and set password: %w", res.Error)
	}
	return res.RowsAffected, nil // Zero means the old password did not match
}

// roleIDs lists the role ids linked to userID in link order
func (s *UserStore) roleIDs(ctx context.Context, db *gorm.DB, userID uint64) ([]uint64, error) {
	var ids []uint64
	if err := db.WithContext(ctx).Model(&domain.UserRole{}).
		Where("user_id = ?", userID).
		Order("id").
		Pluck("role_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	if ids == nil {
		ids = []uint64{} // Serialize as [] rather than null
	}
	return ids, nil
}

// replaceRoles swaps the role links of userID for roleIDs
func (s *UserStore) replaceRoles(tx *gorm.DB, userID uint64, roleIDs []uint64) error {
	if err := tx.Where("user_id = ?", userID).Delete(&domain.UserRole{}).Error; err != nil {
		return fmt.Errorf("clear roles: %w", err)
	}
	// One link per distinct role
	links := lo.Map(lo.Uniq(roleIDs), func(roleID uint64, _ int) domain.UserRole {
		return domain.UserRole{UserID: userID, RoleID: roleID}
	})
	if len(links) == 0 {
		return nil
	}
	if err := tx.Create(&links).Error; err != nil {
		return fmt.Errorf("link roles: %w", err)
	}
	return nil
}
