package tracker

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expensesOf(amounts ...string) []model.Expense {
	out := make([]model.Expense, len(amounts))
	for i, a := range amounts {
		out[i] = model.Expense{ID: string(rune('a' + i)), Amount: dec(a)}
	}
	return out
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		budget    string
		amounts   []string
		spent     string
		remaining string
		pct       int
	}{
		{"empty", "500", nil, "0", "500", 0},
		{"partial", "500", []string{"300"}, "300", "200", 60},
		{"exact", "100", []string{"60", "40"}, "100", "0", 100},
		{"overspent floors remaining", "100", []string{"80", "70"}, "150", "0", 150},
		{"zero budget", "0", []string{"10"}, "10", "0", 0},
		{"rounding", "3", []string{"1"}, "1", "2", 33},
		{"half rounds up", "8", []string{"1"}, "1", "7", 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(model.Budget{Total: dec(tt.budget)}, expensesOf(tt.amounts...))
			if !got.Spent.Equal(dec(tt.spent)) {
				t.Errorf("Spent = %s, want %s", got.Spent, tt.spent)
			}
			if !got.Remaining.Equal(dec(tt.remaining)) {
				t.Errorf("Remaining = %s, want %s", got.Remaining, tt.remaining)
			}
			if got.Remaining.IsNegative() {
				t.Errorf("Remaining is negative: %s", got.Remaining)
			}
			if got.Percentage != tt.pct {
				t.Errorf("Percentage = %d, want %d", got.Percentage, tt.pct)
			}
		})
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	for b := int64(1); b <= 50; b += 7 {
		for s := int64(0); s <= 100; s += 9 {
			tot := ComputeTotals(model.Budget{Total: decimal.NewFromInt(b)}, []model.Expense{{Amount: decimal.NewFromInt(s)}})
			want := decimal.Max(decimal.NewFromInt(b-s), decimal.Zero)
			if !tot.Remaining.Equal(want) {
				t.Fatalf("b=%d s=%d: Remaining = %s, want %s", b, s, tot.Remaining, want)
			}
			if s <= b && (tot.Percentage < 0 || tot.Percentage > 100) {
				t.Fatalf("b=%d s=%d: Percentage %d outside [0,100]", b, s, tot.Percentage)
			}
		}
	}
}

func TestValidateBudget(t *testing.T) {
	for _, in := range []string{"", "0", "-5", "abc", "  "} {
		_, err := ValidateBudget(in)
		if !apperr.IsValidation(err) {
			t.Errorf("ValidateBudget(%q) err = %v, want validation error", in, err)
			continue
		}
		if got := apperr.UserMessage(err); got != apperr.MsgInvalidBudget {
			t.Errorf("ValidateBudget(%q) message = %q", in, got)
		}
	}

	d, err := ValidateBudget(" 750,50 ")
	if err != nil {
		t.Fatalf("ValidateBudget: %v", err)
	}
	if !d.Equal(dec("750.5")) {
		t.Fatalf("ValidateBudget = %s, want 750.5", d)
	}
}
