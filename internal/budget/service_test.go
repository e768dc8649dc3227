package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/andrefarias/budgetmaster/internal/budget"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(i int) *int { return &i }

func decPtr(s string) *decimal.Decimal { d := dec(s); return &d }

func strPtr(s string) *string { return &s }

func statusPtr(s budget.Status) *budget.Status { return &s }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    budget.CreateParams
		setupMock func(m *budget.MockRepository)
		check     func(t *testing.T, b *budget.Budget)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "StatusForcedToPending",
			params: budget.CreateParams{
				CustomerName: "Maria Santos",
				IssueDate:    date(2024, 1, 1),
				Items: []budget.ItemParams{
					{Description: "Logo design", ItemType: budget.ItemTypeService, Quantity: intPtr(1), UnitPrice: decPtr("250.00")},
				},
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, budget.StatusPending, b.Status)
			},
		},
		{
			name: "ExpiryDerivedFromDays",
			params: budget.CreateParams{
				CustomerName: "Maria Santos",
				IssueDate:    date(2024, 1, 1),
				ExpiryDays:   intPtr(10),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, date(2024, 1, 11), b.ExpiryDate)
			},
		},
		{
			name: "ExpiryDefaultsToFifteenDays",
			params: budget.CreateParams{
				CustomerName: "Maria Santos",
				IssueDate:    date(2024, 1, 1),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, date(2024, 1, 16), b.ExpiryDate)
			},
		},
		{
			name: "SubtotalsAndTotalComputed",
			params: budget.CreateParams{
				CustomerName: "Carlos Lima",
				IssueDate:    date(2024, 3, 10),
				Items: []budget.ItemParams{
					{Description: "Cabling", Quantity: intPtr(3), UnitPrice: decPtr("19.90")},
					{Description: "Installation", ItemType: budget.ItemTypeService, Quantity: intPtr(2), Price: decPtr("80.00")},
				},
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				require.Len(t, b.Items, 2)
				assert.True(t, b.Items[0].Subtotal.Equal(dec("59.70")), "got %s", b.Items[0].Subtotal)
				// Price is the fallback field when UnitPrice is absent.
				assert.True(t, b.Items[1].UnitPrice.Equal(dec("80.00")))
				assert.True(t, b.Items[1].Subtotal.Equal(dec("160.00")))
				assert.True(t, b.TotalAmount.Equal(dec("219.70")), "got %s", b.TotalAmount)
				// Item type defaults to Product when absent.
				assert.Equal(t, budget.ItemTypeProduct, b.Items[0].ItemType)
			},
		},
		{
			name: "MissingQuantityResolvesToZero",
			params: budget.CreateParams{
				CustomerName: "Carlos Lima",
				IssueDate:    date(2024, 3, 10),
				Items: []budget.ItemParams{
					{Description: "Consulting", UnitPrice: decPtr("100.00")},
				},
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, 0, b.Items[0].Quantity)
				assert.True(t, b.Items[0].Subtotal.IsZero())
			},
		},
		{
			name: "MissingCustomerName",
			params: budget.CreateParams{
				IssueDate: date(2024, 1, 1),
			},
			wantErr: budget.ErrCustomerNameRequired,
		},
		{
			name: "MissingIssueDate",
			params: budget.CreateParams{
				CustomerName: "Maria Santos",
			},
			wantErr: budget.ErrIssueDateRequired,
		},
		{
			name: "NegativeExpiryDays",
			params: budget.CreateParams{
				CustomerName: "Maria Santos",
				IssueDate:    date(2024, 1, 1),
				ExpiryDays:   intPtr(-3),
			},
			wantErr: budget.ErrInvalidExpiryDays,
		},
		{
			name: "NegativeUnitPrice",
			params: budget.CreateParams{
				CustomerName: "Maria Santos",
				IssueDate:    date(2024, 1, 1),
				Items: []budget.ItemParams{
					{Description: "Broken", UnitPrice: decPtr("-1.00")},
				},
			},
			wantErr: budget.ErrNegativeUnitPrice,
		},
		{
			name: "RepoError",
			params: budget.CreateParams{
				CustomerName: "Maria Santos",
				IssueDate:    date(2024, 1, 1),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := budget.NewService(repo)
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

func TestService_Update(t *testing.T) {
	id := uuid.New()

	stored := func() *budget.Budget {
		return &budget.Budget{
			ID:            id,
			CustomerName:  "Maria Santos",
			CustomerEmail: "maria@example.com",
			IssueDate:     date(2024, 1, 1),
			ExpiryDate:    date(2024, 1, 16),
			Status:        budget.StatusPending,
			TotalAmount:   dec("100.00"),
			Items: []budget.Item{
				{ID: uuid.New(), BudgetID: id, Description: "Old item", Quantity: 1, UnitPrice: dec("100.00"), Subtotal: dec("100.00")},
			},
		}
	}

	type testCase struct {
		name      string
		params    budget.UpdateParams
		setupMock func(m *budget.MockRepository)
		check     func(t *testing.T, b *budget.Budget)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "NotFound",
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().GetBudget(gomock.Any(), id).Return(nil, budget.ErrNotFound)
			},
			wantErr: budget.ErrNotFound,
		},
		{
			name: "ExplicitExpiryDateWins",
			params: budget.UpdateParams{
				ExpiryDate: datePtr(2024, 2, 28),
				ExpiryDays: intPtr(30),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().GetBudget(gomock.Any(), id).Return(stored(), nil)
				m.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, date(2024, 2, 28), b.ExpiryDate)
			},
		},
		{
			name: "ExpiryRederivedFromNewIssueDate",
			params: budget.UpdateParams{
				IssueDate:  datePtr(2024, 2, 1),
				ExpiryDays: intPtr(10),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().GetBudget(gomock.Any(), id).Return(stored(), nil)
				m.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, date(2024, 2, 11), b.ExpiryDate)
			},
		},
		{
			name: "ExpiryDaysAgainstStoredIssueDate",
			params: budget.UpdateParams{
				ExpiryDays: intPtr(5),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().GetBudget(gomock.Any(), id).Return(stored(), nil)
				m.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, date(2024, 1, 6), b.ExpiryDate)
			},
		},
		{
			name: "StatusHonoredOnUpdate",
			params: budget.UpdateParams{
				Status: statusPtr(budget.StatusApproved),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().GetBudget(gomock.Any(), id).Return(stored(), nil)
				m.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Equal(t, budget.StatusApproved, b.Status)
			},
		},
		{
			name: "UnknownStatusRejected",
			params: budget.UpdateParams{
				Status: statusPtr(budget.Status("Archived")),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().GetBudget(gomock.Any(), id).Return(stored(), nil)
			},
			wantErr: budget.ErrInvalidStatus,
		},
		{
			name: "ItemsFullyReplaced",
			params: budget.UpdateParams{
				Items: []budget.ItemParams{
					{Description: "New item B", Quantity: intPtr(2), UnitPrice: decPtr("10.00")},
					{Description: "New item C", Quantity: intPtr(1), UnitPrice: decPtr("5.50")},
				},
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().GetBudget(gomock.Any(), id).Return(stored(), nil)
				m.EXPECT().
					UpdateBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *budget.Budget) error {
						require.Len(t, b.Items, 2)
						assert.Equal(t, "New item B", b.Items[0].Description)
						assert.Equal(t, "New item C", b.Items[1].Description)
						return nil
					})
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.True(t, b.TotalAmount.Equal(dec("25.50")), "got %s", b.TotalAmount)
			},
		},
		{
			name:   "EmptyItemSetClearsItems",
			params: budget.UpdateParams{},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().GetBudget(gomock.Any(), id).Return(stored(), nil)
				m.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, b *budget.Budget) {
				assert.Empty(t, b.Items)
				assert.True(t, b.TotalAmount.IsZero())
			},
		},
		{
			name: "BlankCustomerNameRejected",
			params: budget.UpdateParams{
				CustomerName: strPtr("   "),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().GetBudget(gomock.Any(), id).Return(stored(), nil)
			},
			wantErr: budget.ErrCustomerNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := budget.NewService(repo)
			got, err := svc.Update(context.Background(), id, tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

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

	repo := budget.NewMockRepository(ctrl)
	gomock.InOrder(
		repo.EXPECT().DeleteBudget(gomock.Any(), id).Return(nil),
		repo.EXPECT().DeleteBudget(gomock.Any(), id).Return(budget.ErrNotFound),
	)

	svc := budget.NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), id))

	// Deleting again must report not found, never succeed silently.
	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, budget.ErrNotFound)
}

func TestService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	budgets := []*budget.Budget{
		{Status: budget.StatusApproved, TotalAmount: dec("100.00")},
		{Status: budget.StatusPending, TotalAmount: dec("50.00")},
		{Status: budget.StatusPending, TotalAmount: dec("25.00")},
		{Status: budget.StatusRejected, TotalAmount: dec("10.00")},
		{Status: budget.StatusPending, TotalAmount: dec("5.00")},
		{Status: budget.StatusPending, TotalAmount: dec("1.00")},
	}

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().ListBudgets(gomock.Any()).Return(budgets, nil)

	svc := budget.NewService(repo)

	stats, err := svc.Summarize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.TotalCount)
	assert.Equal(t, 4, stats.PendingCount)
	assert.Equal(t, 1, stats.ApprovedCount)
	assert.Equal(t, 1, stats.RejectedCount)
	assert.True(t, stats.TotalValue.Equal(dec("191.00")), "got %s", stats.TotalValue)
	assert.Len(t, stats.Recent, 5)
}
