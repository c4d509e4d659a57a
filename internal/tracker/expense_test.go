package tracker

import (
	"testing"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
)

func draft(amount string) model.ExpenseDraft {
	return model.ExpenseDraft{Name: "Rent", Amount: amount, Date: "2024-01-01", CategoryID: "c1"}
}

func TestValidateExpenseRules(t *testing.T) {
	tests := []struct {
		name    string
		draft   model.ExpenseDraft
		remain  string
		wantMsg string
	}{
		{"missing name", model.ExpenseDraft{Amount: "1", Date: "2024-01-01", CategoryID: "c1"}, "10", apperr.MsgRequired},
		{"missing category", model.ExpenseDraft{Name: "x", Amount: "1", Date: "2024-01-01"}, "10", apperr.MsgRequired},
		{"missing date", model.ExpenseDraft{Name: "x", Amount: "1", CategoryID: "c1"}, "10", apperr.MsgRequired},
		{"missing amount", model.ExpenseDraft{Name: "x", Date: "2024-01-01", CategoryID: "c1"}, "10", apperr.MsgRequired},
		{"non numeric", draft("ten"), "10", apperr.MsgInvalidAmount},
		{"zero", draft("0"), "10", apperr.MsgInvalidAmount},
		{"negative", draft("-3"), "10", apperr.MsgInvalidAmount},
		{"bad date", model.ExpenseDraft{Name: "x", Amount: "1", Date: "01/02/2024", CategoryID: "c1"}, "10", apperr.MsgInvalidDate},
		{"over remaining", draft("250"), "200", apperr.MsgInsufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateExpense(tt.draft, dec(tt.remain), nil)
			if !apperr.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if got := apperr.UserMessage(err); got != tt.wantMsg {
				t.Fatalf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestValidateExpenseAccepts(t *testing.T) {
	in, err := ValidateExpense(model.ExpenseDraft{
		Name: " Rent ", Amount: "200", Date: "2024-01-01T09:00:00Z", CategoryID: "c1", Description: " monthly ",
	}, dec("200"), nil)
	if err != nil {
		t.Fatalf("ValidateExpense: %v", err)
	}
	if in.Name != "Rent" || in.Date != "2024-01-01" || in.Description != "monthly" {
		t.Fatalf("unexpected input %+v", in)
	}
	if !in.Amount.Equal(dec("200")) {
		t.Fatalf("Amount = %s", in.Amount)
	}
}

func TestUnchangedEditNeverFailsBudgetCheck(t *testing.T) {
	for _, remaining := range []string{"0", "0.01", "5", "1000"} {
		replaced := &model.Expense{ID: "e1", Amount: dec("300")}
		if _, err := ValidateExpense(draft("300"), dec(remaining), replaced); err != nil {
			t.Errorf("remaining=%s: unchanged edit rejected: %v", remaining, err)
		}
	}
}

func TestEditCountsReplacedAmount(t *testing.T) {
	replaced := &model.Expense{ID: "e1", Amount: dec("300")}
	if _, err := ValidateExpense(draft("400"), dec("200"), replaced); err != nil {
		t.Fatalf("400 <= 200+300 rejected: %v", err)
	}
	if _, err := ValidateExpense(draft("501"), dec("200"), replaced); apperr.UserMessage(err) != apperr.MsgInsufficient {
		t.Fatalf("501 > 200+300 accepted, err = %v", err)
	}
}

func TestResolveCategoryName(t *testing.T) {
	cats := []model.Category{{ID: "C1", Name: "Home"}, {ID: "c2", Name: "Food"}}

	// a name on the record wins, even with no matching category
	e := model.Expense{CategoryID: "zzz", EmbeddedCategory: "Food"}
	if got := ResolveCategoryName(e, nil); got != "Food" {
		t.Errorf("embedded name: got %q", got)
	}

	e = model.Expense{CategoryID: "c1"}
	if got := ResolveCategoryName(e, cats); got != "Home" {
		t.Errorf("case-insensitive id lookup: got %q", got)
	}

	e = model.Expense{}
	if got := ResolveCategoryName(e, cats); got != "" {
		t.Errorf("no name, no id: got %q", got)
	}

	e = model.Expense{CategoryID: "c9"}
	if got := ResolveCategoryName(e, cats); got != "" {
		t.Errorf("unknown id: got %q", got)
	}

	// a name left over from a previous lookup does not count as embedded
	e = model.Expense{CategoryID: "c9", CategoryName: "Travel"}
	if got := ResolveCategoryName(e, cats); got != "" {
		t.Errorf("stale looked-up name: got %q", got)
	}
}

func TestResolveCategoriesInPlace(t *testing.T) {
	list := []model.Expense{{ID: "1", CategoryID: "C2"}, {ID: "2", EmbeddedCategory: "Fun"}}
	ResolveCategories(list, []model.Category{{ID: "c2", Name: "Food"}})
	if list[0].CategoryName != "Food" || list[1].CategoryName != "Fun" {
		t.Fatalf("got %+v", list)
	}
}

func TestCategoryColorStable(t *testing.T) {
	a, b := CategoryColor("Food"), CategoryColor("food")
	if a != b {
		t.Fatalf("color depends on case: %d vs %d", a, b)
	}
	if a < 0 || a >= 360 {
		t.Fatalf("hue %d out of range", a)
	}
}
