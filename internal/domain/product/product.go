// Package product holds the counting sheet: the flat product table the
// inventory UI reads and writes while physical counting is in progress.
package product

import (
	"context"
	"time"
)

// Product is one row of the counting sheet. Quantity is the physically
// counted amount; nil means not counted yet.
type Product struct {
	ID        uint
	Code      string
	Name      string
	Quantity  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Counted reports whether a quantity has been recorded. Zero is a valid
// count; only nil means uncounted.
func (p *Product) Counted() bool {
	return p.Quantity != nil
}

// Repository provides access to the product table.
type Repository interface {
	// List returns a page of products ordered by code. search matches name or
	// code case-insensitively; empty search returns everything.
	List(ctx context.Context, search string, offset, limit int) ([]*Product, int64, error)
	GetByCode(ctx context.Context, code string) (*Product, error)
	// UpdateQuantity sets the counted quantity; nil clears it.
	UpdateQuantity(ctx context.Context, code string, quantity *int64) (*Product, error)
	// CountingStats returns the total number of products and how many have a
	// recorded quantity.
	CountingStats(ctx context.Context) (total int64, counted int64, err error)
}
