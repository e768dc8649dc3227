package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a budget.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}

	return false
}

// ItemType distinguishes product lines from service lines.
type ItemType string

const (
	ItemTypeProduct ItemType = "Product"
	ItemTypeService ItemType = "Service"
)

var (
	ErrNotFound                = errors.New("budget not found")
	ErrCustomerNameRequired    = errors.New("customer name is required")
	ErrIssueDateRequired       = errors.New("issue date is required")
	ErrInvalidStatus           = errors.New("invalid budget status")
	ErrInvalidExpiryDays       = errors.New("expiry days must not be negative")
	ErrItemDescriptionRequired = errors.New("item description is required")
	ErrNegativeUnitPrice       = errors.New("unit price must not be negative")
)

// Budget is a customer-facing quote: header fields plus owned line items.
type Budget struct {
	ID            uuid.UUID
	CustomerName  string
	CustomerEmail string
	IssueDate     time.Time // date-only
	ExpiryDate    time.Time // date-only
	Status        Status
	TotalAmount   decimal.Decimal
	Notes         string
	Items         []Item
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Item is one line of a budget. Quantities and prices are snapshots taken
// when the budget is written; a later catalogue price change never touches
// an existing item.
type Item struct {
	ID          uuid.UUID
	BudgetID    uuid.UUID
	Description string
	ItemType    ItemType
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
