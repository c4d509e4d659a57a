package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category is a read-mostly label grouping expenses.
type Category struct {
	ID   string
	Name string
}

// Matches compares ids case-insensitively.
func (c Category) Matches(id string) bool {
	return id != "" && strings.EqualFold(c.ID, id)
}

// Expense is a single recorded outflow against the budget.
//
// EmbeddedCategory is the name the backend payload carried, if any.
// CategoryName is the display name: the embedded one when present, otherwise
// resolved against the fetched category list on every refresh.
type Expense struct {
	ID               string
	Name             string
	Amount           decimal.Decimal
	Date             string // YYYY-MM-DD
	Description      string
	CategoryID       string
	CategoryName     string
	EmbeddedCategory string
}

// ExpenseDraft is unvalidated form input for creating or editing an expense.
type ExpenseDraft struct {
	Name        string
	Amount      string
	Date        string
	CategoryID  string
	Description string
}

// DraftFrom pre-fills a draft from an existing expense for editing.
func DraftFrom(e Expense) ExpenseDraft {
	return ExpenseDraft{
		Name:        e.Name,
		Amount:      e.Amount.String(),
		Date:        e.Date,
		CategoryID:  e.CategoryID,
		Description: e.Description,
	}
}
