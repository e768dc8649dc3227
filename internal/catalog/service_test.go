package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/andrefarias/budgetmaster/internal/budget"
	"github.com/andrefarias/budgetmaster/internal/catalog"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    catalog.CreateParams
		setupMock func(m *catalog.MockRepository)
		check     func(t *testing.T, p *catalog.Product)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: catalog.CreateParams{
				Name:      "Network switch",
				ItemType:  budget.ItemTypeProduct,
				BasePrice: decPtr("149.90"),
			},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, p *catalog.Product) {
				assert.True(t, p.BasePrice.Equal(decimal.RequireFromString("149.90")))
			},
		},
		{
			name: "MissingBasePriceDefaultsToZero",
			params: catalog.CreateParams{
				Name:     "Site survey",
				ItemType: budget.ItemTypeService,
			},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, p *catalog.Product) {
				assert.True(t, p.BasePrice.IsZero())
			},
		},
		{
			name: "ItemTypeDefaultsToProduct",
			params: catalog.CreateParams{
				Name: "Cable tie pack",
			},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, p *catalog.Product) {
				assert.Equal(t, budget.ItemTypeProduct, p.ItemType)
			},
		},
		{
			name:    "MissingName",
			params:  catalog.CreateParams{ItemType: budget.ItemTypeProduct},
			wantErr: catalog.ErrNameRequired,
		},
		{
			name: "UnknownItemType",
			params: catalog.CreateParams{
				Name:     "Mystery",
				ItemType: budget.ItemType("Subscription"),
			},
			wantErr: catalog.ErrInvalidItemType,
		},
		{
			name: "NegativeBasePrice",
			params: catalog.CreateParams{
				Name:      "Bad price",
				BasePrice: decPtr("-5.00"),
			},
			wantErr: catalog.ErrNegativeBasePrice,
		},
		{
			name: "RepoError",
			params: catalog.CreateParams{
				Name: "Network switch",
			},
			setupMock: func(m *catalog.MockRepository) {
				m.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := catalog.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := catalog.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := catalog.NewMockRepository(ctrl)
	repo.EXPECT().DeleteProduct(gomock.Any(), id).Return(catalog.ErrNotFound)

	svc := catalog.NewService(repo)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
