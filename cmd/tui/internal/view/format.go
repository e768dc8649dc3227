package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats a monetary value with two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return "$ " + d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
