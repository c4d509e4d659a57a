package tracker

import (
	"hash/fnv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/api"
	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
)

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD, or a full timestamp whose date part is used.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", apperr.Validation("date", apperr.MsgInvalidDate)
	}
	return s, nil
}

// ValidateExpense checks a draft against the budget before anything is sent.
//
// Mandatory fields come first, then the amount must be a positive number,
// then it must fit in what is left. When replacing an existing record, that
// record's amount counts as available so an unchanged edit always passes.
func ValidateExpense(d model.ExpenseDraft, remaining decimal.Decimal, replaced *model.Expense) (api.ExpenseInput, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" || strings.TrimSpace(d.Amount) == "" || strings.TrimSpace(d.Date) == "" || strings.TrimSpace(d.CategoryID) == "" {
		return api.ExpenseInput{}, apperr.Validation("", apperr.MsgRequired)
	}

	amount, err := ParseAmount(d.Amount)
	if err != nil || !amount.IsPositive() {
		return api.ExpenseInput{}, apperr.Validation("amount", apperr.MsgInvalidAmount)
	}

	date, err := ParseDate(d.Date)
	if err != nil {
		return api.ExpenseInput{}, err
	}

	available := remaining
	if replaced != nil {
		available = available.Add(replaced.Amount)
	}
	if amount.GreaterThan(available) {
		return api.ExpenseInput{}, apperr.Validation("amount", apperr.MsgInsufficient)
	}

	return api.ExpenseInput{
		Name:        name,
		Amount:      amount,
		Date:        date,
		Description: strings.TrimSpace(d.Description),
		CategoryID:  strings.TrimSpace(d.CategoryID),
	}, nil
}

// ResolveCategoryName returns the display name for an expense's category.
// A name the backend embedded in the record wins; otherwise the id is looked
// up case-insensitively. A name from an earlier lookup is never reused, so
// renamed or deleted categories show up on the next refresh. The result is
// empty when neither resolves.
func ResolveCategoryName(e model.Expense, categories []model.Category) string {
	if e.EmbeddedCategory != "" {
		return e.EmbeddedCategory
	}
	for _, c := range categories {
		if c.Matches(e.CategoryID) {
			return c.Name
		}
	}
	return ""
}

// ResolveCategories fills CategoryName on every expense in place.
func ResolveCategories(expenses []model.Expense, categories []model.Category) {
	for i := range expenses {
		expenses[i].CategoryName = ResolveCategoryName(expenses[i], categories)
	}
}

// FindCategory returns the category whose id matches, case-insensitively.
func FindCategory(categories []model.Category, id string) (model.Category, bool) {
	for _, c := range categories {
		if c.Matches(id) {
			return c, true
		}
	}
	return model.Category{}, false
}

// CategoryColor maps a category name to a stable hue in [0, 360).
func CategoryColor(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(name)))
	return int(h.Sum32() % 360)
}
