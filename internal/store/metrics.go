package store

import (
	"context"                     // Context for queries
	"database/sql"                // Nullable scan targets
	"fmt"                         // Error wrapping
	"user_admin/internal/domain"  // Importing domain models
	"user_admin/internal/metrics" // Raw aggregate rows

	"github.com/shopspring/decimal" // Decimal amounts
	"gorm.io/gorm"                  // GORM ORM library
)

// MetricsSource reads grouped sales totals per goods category
type MetricsSource struct {
	db *gorm.DB // Database handle
}

// NewMetricsSource wraps db
func NewMetricsSource(db *gorm.DB) *MetricsSource {
	return &MetricsSource{db: db}
}

// GroupedPriceTotals returns the sales amount of every category, in category order
func (s *MetricsSource) GroupedPriceTotals(ctx context.Context) ([]metrics.RawRow, error) {
	var rows []metrics.RawRow
	err := s.byCategory(ctx).
		Select("gc.name AS name, SUM(og.price * og.number) AS price"). // Amount per category
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group price totals: %w", err)
	}
	return rows, nil
}

// GroupedCountTotals returns the units sold of every category, in category order
func (s *MetricsSource) GroupedCountTotals(ctx context.Context) ([]metrics.RawRow, error) {
	var rows []metrics.RawRow
	err := s.byCategory(ctx).
		Select("gc.name AS name, CAST(SUM(og.number) AS CHAR) AS number"). // Units per category, as text
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("group count totals: %w", err)
	}
	return rows, nil
}

// Totals computes the dashboard headline numbers
func (s *MetricsSource) Totals(ctx context.Context) (domain.Overview, error) {
	var overview domain.Overview
	db := s.db.WithContext(ctx)
	if err := db.Model(&domain.Account{}).Count(&overview.TotalUser).Error; err != nil {
		return overview, fmt.Errorf("count users: %w", err)
	}
	if err := db.Model(&domain.Comment{}).Count(&overview.TotalComment).Error; err != nil {
		return overview, fmt.Errorf("count comments: %w", err)
	}
	var sums struct {
		Price  decimal.NullDecimal // NULL without sales
		Number sql.NullInt64       // NULL without sales
	}
	if err := db.Model(&domain.OrderGoods{}).
		Select("SUM(price * number) AS price, SUM(number) AS number").
		Scan(&sums).Error; err != nil {
		return overview, fmt.Errorf("sum sales: %w", err)
	}
	overview.TotalPrice = sums.Price.Decimal   // Zero when there are no sales
	overview.TotalShopping = sums.Number.Int64 // Units sold
	return overview, nil
}

// byCategory groups sold lines by their category
func (s *MetricsSource) byCategory(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("order_goods AS og").                                   // Sold lines
		Joins("JOIN goods_category AS gc ON gc.id = og.category_id"). // Category names
		Group("gc.id, gc.name").                                      // One row per category
		Order("gc.id")                                                // Stable category order
}
