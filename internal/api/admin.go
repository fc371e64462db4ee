package api

import (
	"context"                     // Context for Redis operations
	"errors"                      // Error matching
	"strconv"                     // String conversion
	"strings"                     // String manipulation
	"time"                        // Time durations
	"user_admin/internal/domain"  // Importing domain models
	"user_admin/internal/service" // Account operations
	"user_admin/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// usersCachePattern matches every cached account list page
const usersCachePattern = "admin:users:*"

// usersGenerationKey counts account mutations; list keys embed it so a page
// loaded before a mutation is never served after it
const usersGenerationKey = "admin:usersgen"

// listCacheTTL bounds how stale a cached page may be
const listCacheTTL = 60 * time.Second

// UserRequest is the body of save and update calls
type UserRequest struct {
	UserID     uint64   `json:"userId"`                               // Required for update
	Username   string   `json:"username" binding:"required"`          // Username must be provided
	Password   string   `json:"password"`                             // Required for save, optional for update
	Email      string   `json:"email" binding:"omitempty,email"`      // Contact email
	Mobile     string   `json:"mobile"`                               // Contact phone
	Status     *int     `json:"status" binding:"omitempty,oneof=0 1"` // 0 disabled, 1 active
	RoleIDList []uint64 `json:"roleIdList"`                           // Role ids to link
}

// account converts the request into a domain account
func (r UserRequest) account() *domain.Account {
	status := domain.StatusActive // New accounts are active unless stated otherwise
	if r.Status != nil {
		status = *r.Status
	}
	return &domain.Account{
		ID:       r.UserID,
		Username: r.Username,
		Email:    r.Email,
		Mobile:   r.Mobile,
		Status:   status,
		RoleIDs:  r.RoleIDList,
	}
}

// ListUsersHandler returns the page of accounts visible to the caller
func ListUsersHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, exists := caller(c) // Authenticated caller
		if !exists {
			return
		}
		ctx := c.Request.Context()
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))    // Requested page
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10")) // Requested page size
		filters := map[string]string{}                          // Free-form filters
		for _, k := range []string{domain.FilterUsername, domain.FilterStatus, domain.FilterCreateUserID} {
			if v := strings.TrimSpace(c.Query(k)); v != "" {
				filters[k] = v // Keep only supplied filters
			}
		}
		q := domain.NewListQuery(page, limit, filters) // Clamp pagination
		gen, genErr := listGeneration(ctx, rdb)        // Read before loading, so a racing mutation retires this key
		cacheKey := listCacheKey(me, q, gen)           // Cache key includes the caller so scoping holds
		var cached domain.Page[domain.Account]
		// If cached data found, return it
		if genErr == nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				ok(c, gin.H{"page": cached, "cached": true})
				return
			}
		}
		result, err := svc.ListAccounts(ctx, q, me)
		if err != nil {
			fail(c, err)
			return
		}
		// Cache the response for future requests
		if genErr == nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, result, listCacheTTL)
		}
		ok(c, gin.H{"page": result, "cached": false})
	}
}

// UserInfoHandler returns one account with its role ids
func UserInfoHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, exists := caller(c) // Authenticated caller
		if !exists {
			return
		}
		id, err := strconv.ParseUint(c.Param("userId"), 10, 64) // Target account id
		if err != nil {
			badRequest(c, "Invalid user id")
			return
		}
		account, err := svc.GetAccount(c.Request.Context(), id, me)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, gin.H{"user": account})
	}
}

// SaveUserHandler creates an account owned by the caller
func SaveUserHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, exists := caller(c) // Authenticated caller
		if !exists {
			return
		}
		var req UserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		account := req.account()
		if err := svc.SaveAccount(c.Request.Context(), account, req.Password, me); err != nil {
			fail(c, err)
			return
		}
		dropListCache(c.Request.Context(), rdb) // Lists changed
		ok(c, gin.H{"userId": account.ID})
	}
}

// UpdateUserHandler rewrites an account the caller may manage
func UpdateUserHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, exists := caller(c) // Authenticated caller
		if !exists {
			return
		}
		var req UserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if err := svc.UpdateAccount(c.Request.Context(), req.account(), req.Password, me); err != nil {
			fail(c, err)
			return
		}
		dropListCache(c.Request.Context(), rdb) // Lists changed
		ok(c, nil)
	}
}

// DeleteUsersHandler deletes the accounts listed in the JSON array body
func DeleteUsersHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		me, exists := caller(c) // Authenticated caller
		if !exists {
			return
		}
		var ids []uint64 // Bind JSON array of ids
		if err := c.ShouldBindJSON(&ids); err != nil || len(ids) == 0 {
			badRequest(c, "Invalid request")
			return
		}
		if err := svc.DeleteAccounts(c.Request.Context(), ids, me); err != nil {
			fail(c, err)
			return
		}
		dropListCache(c.Request.Context(), rdb) // Lists changed
		ok(c, nil)
	}
}

// listCacheKey builds the cache key of one caller's list page
func listCacheKey(me domain.CallerIdentity, q domain.ListQuery, gen int64) string {
	var parts []string // Parts of the cache key
	parts = append(parts, "gen="+strconv.FormatInt(gen, 10), "caller="+strconv.FormatUint(me.UserID, 10))
	parts = append(parts, "page="+strconv.Itoa(q.Page), "limit="+strconv.Itoa(q.Limit))
	// Append each filter to the key parts in a fixed order
	for _, k := range []string{domain.FilterUsername, domain.FilterStatus, domain.FilterCreateUserID} {
		parts = append(parts, k+"="+q.Filters[k])
	}
	return "admin:users:" + strings.Join(parts, ":")
}

// listGeneration returns the current account mutation count
func listGeneration(ctx context.Context, rdb *redis.Client) (int64, error) {
	gen, err := rdb.Get(ctx, usersGenerationKey).Int64() // Current generation
	if errors.Is(err, redis.Nil) {
		return 0, nil // No mutation yet
	}
	return gen, err
}

// dropListCache invalidates every cached account list page
func dropListCache(ctx context.Context, rdb *redis.Client) {
	if err := rdb.Incr(ctx, usersGenerationKey).Err(); err != nil {
		logrus.WithError(err).Warn("Failed to advance account list generation")
	}
	if err := utils.DeleteCachePattern(ctx, rdb, usersCachePattern); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate account list cache") // Entries expire on their own
	}
}
