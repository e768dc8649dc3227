package budget

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultExpiryDays is added to the issue date when the caller does not
// supply an expiry window.
const DefaultExpiryDays = 15

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ItemParams describes one incoming line. UnitPrice is preferred; Price is
// accepted as a fallback for older clients. Nil quantity or price resolve
// to zero.
type ItemParams struct {
	Description string
	ItemType    ItemType
	Quantity    *int
	UnitPrice   *decimal.Decimal
	Price       *decimal.Decimal
}

type CreateParams struct {
	CustomerName  string
	CustomerEmail string
	IssueDate     time.Time
	ExpiryDays    *int
	Notes         string
	Items         []ItemParams
}

// UpdateParams carries the mutable header fields. Nil pointers leave the
// stored value untouched. Items always replace the full stored set, even
// when empty.
type UpdateParams struct {
	CustomerName  *string
	CustomerEmail *string
	IssueDate     *time.Time
	ExpiryDate    *time.Time
	ExpiryDays    *int
	Status        *Status
	Notes         *string
	Items         []ItemParams
}

// Create validates the input, derives the expiry date and persists the
// header together with its item set. The status is always Pending at
// creation; any status supplied by the caller is ignored.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if strings.TrimSpace(params.CustomerName) == "" {
		return nil, ErrCustomerNameRequired
	}

	if params.IssueDate.IsZero() {
		return nil, ErrIssueDateRequired
	}

	expiryDate, err := deriveExpiry(params.IssueDate, params.ExpiryDays)
	if err != nil {
		return nil, err
	}

	items, err := resolveItems(params.Items)
	if err != nil {
		return nil, err
	}

	b := &Budget{
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		IssueDate:     params.IssueDate,
		ExpiryDate:    expiryDate,
		Status:        StatusPending,
		TotalAmount:   sumSubtotals(items),
		Notes:         params.Notes,
		Items:         items,
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Update mutates the header and destructively replaces the item set.
// An explicit expiry date wins; otherwise the expiry is re-derived from
// the (new or stored) issue date plus the expiry window.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Budget, error) {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.CustomerName != nil {
		if strings.TrimSpace(*params.CustomerName) == "" {
			return nil, ErrCustomerNameRequired
		}

		b.CustomerName = *params.CustomerName
	}

	if params.CustomerEmail != nil {
		b.CustomerEmail = *params.CustomerEmail
	}

	if params.IssueDate != nil {
		b.IssueDate = *params.IssueDate
	}

	switch {
	case params.ExpiryDate != nil:
		b.ExpiryDate = *params.ExpiryDate
	case params.ExpiryDays != nil || params.IssueDate != nil:
		expiryDate, err := deriveExpiry(b.IssueDate, params.ExpiryDays)
		if err != nil {
			return nil, err
		}

		b.ExpiryDate = expiryDate
	}

	if params.Status != nil {
		// Transitions are unrestricted, but the value must be a known state.
		if !params.Status.Valid() {
			return nil, ErrInvalidStatus
		}

		b.Status = *params.Status
	}

	if params.Notes != nil {
		b.Notes = *params.Notes
	}

	items, err := resolveItems(params.Items)
	if err != nil {
		return nil, err
	}

	b.Items = items
	b.TotalAmount = sumSubtotals(items)

	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Get loads a budget with its items.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

// List returns budget headers ordered by creation time descending.
func (s *Service) List(ctx context.Context) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx)
}

// Delete removes the budget and all of its items. A second delete of the
// same id reports ErrNotFound.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}

// Stats summarises the budget book for the dashboard.
type Stats struct {
	TotalCount    int
	PendingCount  int
	ApprovedCount int
	RejectedCount int
	TotalValue    decimal.Decimal
	Recent        []*Budget
}

const recentBudgetCount = 5

// Summarize aggregates counts per status, the summed total value and the
// most recent budgets.
func (s *Service) Summarize(ctx context.Context) (*Stats, error) {
	budgets, err := s.repo.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalCount: len(budgets),
		TotalValue: decimal.Zero,
	}

	for _, b := range budgets {
		switch b.Status {
		case StatusPending:
			stats.PendingCount++
		case StatusApproved:
			stats.ApprovedCount++
		case StatusRejected:
			stats.RejectedCount++
		}

		stats.TotalValue = stats.TotalValue.Add(b.TotalAmount)
	}

	if len(budgets) > recentBudgetCount {
		budgets = budgets[:recentBudgetCount]
	}

	stats.Recent = budgets

	return stats, nil
}

// deriveExpiry computes issueDate + days, defaulting to DefaultExpiryDays
// when days is absent. A nil days pointer is the "absent or non-numeric"
// case and never means a zero-day expiry.
func deriveExpiry(issueDate time.Time, days *int) (time.Time, error) {
	d := DefaultExpiryDays
	if days != nil {
		if *days < 0 {
			return time.Time{}, ErrInvalidExpiryDays
		}

		d = *days
	}

	return issueDate.AddDate(0, 0, d), nil
}

// resolveItems applies the per-item rules: unit price falls back to the
// legacy price field, quantities clamp to zero, the item type defaults to
// Product and the subtotal is fixed at quantity * unit price.
func resolveItems(params []ItemParams) ([]Item, error) {
	items := make([]Item, 0, len(params))

	for _, p := range params {
		if strings.TrimSpace(p.Description) == "" {
			return nil, ErrItemDescriptionRequired
		}

		unitPrice := decimal.Zero
		if p.UnitPrice != nil {
			unitPrice = *p.UnitPrice
		} else if p.Price != nil {
			unitPrice = *p.Price
		}

		if unitPrice.IsNegative() {
			return nil, ErrNegativeUnitPrice
		}

		quantity := 0
		if p.Quantity != nil && *p.Quantity > 0 {
			quantity = *p.Quantity
		}

		itemType := p.ItemType
		if itemType == "" {
			itemType = ItemTypeProduct
		}

		items = append(items, Item{
			Description: p.Description,
			ItemType:    itemType,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		})
	}

	return items, nil
}

func sumSubtotals(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}

	return total
}
