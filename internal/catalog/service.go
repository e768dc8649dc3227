package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrefarias/budgetmaster/internal/budget"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	ListProducts(ctx context.Context) ([]*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name      string
	ItemType  budget.ItemType
	BasePrice *decimal.Decimal
}

// Create validates and stores a catalogue entry. An absent base price
// defaults to zero; a negative one is rejected. The item type defaults to
// Product.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}

	itemType := params.ItemType
	if itemType == "" {
		itemType = budget.ItemTypeProduct
	}

	if itemType != budget.ItemTypeProduct && itemType != budget.ItemTypeService {
		return nil, ErrInvalidItemType
	}

	basePrice := decimal.Zero
	if params.BasePrice != nil {
		basePrice = *params.BasePrice
	}

	if basePrice.IsNegative() {
		return nil, ErrNegativeBasePrice
	}

	p := &Product{
		Name:      params.Name,
		ItemType:  itemType,
		BasePrice: basePrice,
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// List returns the full catalogue ordered by name ascending.
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

// Delete removes a product permanently. Historical budget items keep their
// snapshots, so no referential check is made.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}
