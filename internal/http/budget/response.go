package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrefarias/budgetmaster/internal/budget"
	"github.com/andrefarias/budgetmaster/internal/catalog"
)

type budgetResponse struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	IssueDate     string          `json:"issue_date"`
	ExpiryDate    string          `json:"expiry_date"`
	Status        budget.Status   `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         string          `json:"notes,omitempty"`
	Items         []itemResponse  `json:"items,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

type itemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	ItemType    budget.ItemType `json:"item_type"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type productResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	ItemType  budget.ItemType `json:"item_type"`
	BasePrice decimal.Decimal `json:"base_price"`
}

type createFormResponse struct {
	Products []productResponse `json:"products"`
	Today    string            `json:"today"`
}

type editFormResponse struct {
	Budget   budgetResponse    `json:"budget"`
	Products []productResponse `json:"products"`
}

func toResponse(b *budget.Budget) budgetResponse {
	resp := budgetResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		IssueDate:     b.IssueDate.Format(time.DateOnly),
		ExpiryDate:    b.ExpiryDate.Format(time.DateOnly),
		Status:        b.Status,
		TotalAmount:   b.TotalAmount,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}

	for _, it := range b.Items {
		resp.Items = append(resp.Items, itemResponse{
			ID:          it.ID,
			Description: it.Description,
			ItemType:    it.ItemType,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}

	return resp
}

func toResponseList(budgets []*budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	return resp
}

func toProductResponseList(products []*catalog.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = productResponse{
			ID:        p.ID,
			Name:      p.Name,
			ItemType:  p.ItemType,
			BasePrice: p.BasePrice,
		}
	}

	return resp
}
