package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
)

// ExpenseInput is the validated body for create and full-replace update.
type ExpenseInput struct {
	Name        string
	Amount      decimal.Decimal
	Date        string
	Description string
	CategoryID  string
}

type expensePayload struct {
	Name        string      `json:"nombreGasto"`
	Amount      json.Number `json:"monto"`
	Date        string      `json:"fechaGasto"`
	Description string      `json:"descripcion"`
	CategoryID  string      `json:"categoriaID"`
}

func (in ExpenseInput) payload() expensePayload {
	return expensePayload{
		Name:        in.Name,
		Amount:      json.Number(in.Amount.String()),
		Date:        in.Date,
		Description: in.Description,
		CategoryID:  in.CategoryID,
	}
}

// ListExpenses returns the current user's expenses, normalized.
func (c *Client) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "/gastos", nil)
	if err != nil {
		return nil, err
	}
	raws, err := decodeList(body, "gastos", "data", "items")
	if err != nil {
		return nil, &apperr.NetworkError{Op: "GET /gastos", Err: err}
	}
	return NormalizeExpenses(raws), nil
}

// CreateExpense records a new expense.
func (c *Client) CreateExpense(ctx context.Context, in ExpenseInput) (model.Expense, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/gastos", in.payload())
	if err != nil {
		return model.Expense{}, err
	}
	return echoedExpense(body, "", in), nil
}

// UpdateExpense replaces the mutable fields of an expense.
func (c *Client) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (model.Expense, error) {
	body, err := c.doJSON(ctx, http.MethodPatch, "/gastos/"+url.PathEscape(id), in.payload())
	if err != nil {
		return model.Expense{}, err
	}
	return echoedExpense(body, id, in), nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/gastos/"+url.PathEscape(id), nil)
	return err
}

// echoedExpense prefers the record the server sent back and falls back to
// the submitted input when the response body is empty or unexpected.
func echoedExpense(body []byte, id string, in ExpenseInput) model.Expense {
	if e, ok := NormalizeExpense(body); ok && e.Amount.IsPositive() {
		return e
	}
	return model.Expense{
		ID:          id,
		Name:        in.Name,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
		CategoryID:  in.CategoryID,
	}
}
