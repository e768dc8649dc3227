package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrefarias/budgetmaster/internal/budget"
)

var (
	ErrNotFound          = errors.New("product not found")
	ErrNameRequired      = errors.New("product name is required")
	ErrInvalidItemType   = errors.New("invalid item type")
	ErrNegativeBasePrice = errors.New("base price must not be negative")
)

// Product is a reusable catalogue entry. Budget items copy its fields at
// composition time and never reference it afterwards, so deleting a product
// leaves historical budgets intact.
type Product struct {
	ID        uuid.UUID
	Name      string
	ItemType  budget.ItemType
	BasePrice decimal.Decimal
	CreatedAt time.Time
	UpdatedAt *time.Time
}
