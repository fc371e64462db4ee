package api

import (
	"context"                     // Context for service and Redis operations
	"encoding/json"               // Raw JSON for cached charts
	"time"                        // Time durations
	"user_admin/internal/metrics" // Chart shapes
	"user_admin/internal/service" // Dashboard operations
	"user_admin/internal/utils"   // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys of the dashboard charts
const (
	salesCacheKey  = "charts:sales"
	volumeCacheKey = "charts:volume"
)

// chartCacheTTL bounds how stale a cached chart may be
const chartCacheTTL = 60 * time.Second

// chartLoader produces one set of charts
type chartLoader func(ctx context.Context) ([]metrics.Chart, error)

// OverviewHandler returns the dashboard headline totals
func OverviewHandler(svc *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := svc.Overview(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, gin.H{
			"totalUser":     overview.TotalUser,     // Registered accounts
			"totalComment":  overview.TotalComment,  // Posted comments
			"totalPrice":    overview.TotalPrice,    // Revenue across all orders
			"totalShopping": overview.TotalShopping, // Units sold
		})
	}
}

// SalesChartHandler returns the sales amount per category as pie and bar charts
func SalesChartHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return chartHandler(salesCacheKey, svc.SalesChartData, rdb)
}

// VolumeChartHandler returns the units sold per category as pie and bar charts
func VolumeChartHandler(svc *service.AdminService, rdb *redis.Client) gin.HandlerFunc {
	return chartHandler(volumeCacheKey, svc.VolumeChartData, rdb)
}

// chartHandler serves charts from the cache, loading and caching them on a miss
func chartHandler(cacheKey string, load chartLoader, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var cached json.RawMessage // Charts are cached already encoded
		// If cached data found, return it
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			ok(c, gin.H{"data": cached, "cached": true})
			return
		}
		charts, err := load(ctx)
		if err != nil {
			fail(c, err)
			return
		}
		encoded, err := json.Marshal(charts) // Encode once for both cache and response
		if err != nil {
			fail(c, err)
			return
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, json.RawMessage(encoded), chartCacheTTL)
		ok(c, gin.H{"data": json.RawMessage(encoded), "cached": false})
	}
}
