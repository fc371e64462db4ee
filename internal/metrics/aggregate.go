// Package metrics turns grouped sales totals into chart descriptors.
package metrics

import (
	"fmt"                        // Error formatting
	"strconv"                    // Count parsing
	"user_admin/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact decimal values
)

// RawRow is one grouped total as returned by the metrics source.
// Exactly one of Price or Number is expected to be set.
type RawRow struct {
	Name   string              `gorm:"column:name"`   // Category label
	Price  decimal.NullDecimal `gorm:"column:price"`  // Sales amount, set by the price query
	Number *string             `gorm:"column:number"` // Units sold as text, set by the count query
}

// AggregateEntry is a normalized (label, value) pair
type AggregateEntry struct {
	Label string          // Chart label
	Value decimal.Decimal // Exact value
}

// Normalize converts rows into entries, keeping input order and duplicate labels.
// A row without a value, or whose count is not an integer, fails with MALFORMED_ROW.
func Normalize(rows []RawRow) ([]AggregateEntry, error) {
	entries := make([]AggregateEntry, 0, len(rows)) // Never nil, even for no rows
	for i, row := range rows {
		value, err := rowValue(row) // Price first, count second
		if err != nil {
			// One bad row fails the whole set
			return nil, domain.MalformedRow(fmt.Sprintf("row %d (%q): %s", i, row.Name, err))
		}
		entries = append(entries, AggregateEntry{Label: row.Name, Value: value}) // Input order, duplicates kept
	}
	return entries, nil
}

func rowValue(row RawRow) (decimal.Decimal, error) {
	if row.Price.Valid {
		return row.Price.Decimal, nil // Amount rows carry their decimal as is
	}
	if row.Number == nil {
		return decimal.Decimal{}, fmt.Errorf("no price or number")
	}
	n, err := strconv.ParseInt(*row.Number, 10, 64) // Plain base-10 integer, no spaces or exponents
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("number %q is not an integer", *row.Number)
	}
	return decimal.NewFromInt(n), nil
}
