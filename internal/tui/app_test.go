package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gastos/internal/api"
	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
	"github.com/theirongolddev/gastos/internal/store"
	"github.com/theirongolddev/gastos/internal/tracker"
	"github.com/theirongolddev/gastos/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

// stubBackend answers every call from fixed data.
type stubBackend struct {
	budget     decimal.Decimal
	expenses   []model.Expense
	categories []model.Category
}

func (s *stubBackend) Login(_ context.Context, email, password string) (api.LoginResult, error) {
	if password != "pw" {
		return api.LoginResult{}, &apperr.AuthError{Reason: "invalid credentials", Status: 401}
	}
	return api.LoginResult{Session: model.Session{Token: "tok", UserID: "u1", Email: email}}, nil
}

func (s *stubBackend) Register(_ context.Context, in api.RegisterInput) (model.Profile, error) {
	return model.Profile{ID: "u1", Name: in.Name, Email: in.Email}, nil
}

func (s *stubBackend) GetUser(context.Context, string) (model.Profile, error) {
	return model.Profile{ID: "u1", Name: "Ana", Email: "ana@example.com", Budget: model.Budget{Total: s.budget}}, nil
}

func (s *stubBackend) UpdateUser(context.Context, string, string, string, string) error { return nil }

func (s *stubBackend) UpdateBudget(_ context.Context, _ string, total decimal.Decimal) error {
	s.budget = total
	return nil
}

func (s *stubBackend) UploadPhoto(context.Context, string, string, io.Reader) (string, error) {
	return "http://img/p.png", nil
}

func (s *stubBackend) ListExpenses(context.Context) ([]model.Expense, error) { return s.expenses, nil }

func (s *stubBackend) CreateExpense(context.Context, api.ExpenseInput) (model.Expense, error) {
	return model.Expense{}, errors.New("not implemented")
}

func (s *stubBackend) UpdateExpense(context.Context, string, api.ExpenseInput) (model.Expense, error) {
	return model.Expense{}, errors.New("not implemented")
}

func (s *stubBackend) DeleteExpense(context.Context, string) error { return nil }

func (s *stubBackend) ListCategories(context.Context) ([]model.Category, error) {
	return s.categories, nil
}

func (s *stubBackend) CreateCategory(context.Context, string) (model.Category, error) {
	return model.Category{}, nil
}

func (s *stubBackend) DeleteCategory(context.Context, string) error { return nil }

func newTestTracker(t *testing.T, sb *stubBackend) *tracker.Tracker {
	t.Helper()
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	tr := tracker.New(sb, st, nil)
	t.Cleanup(tr.Close)
	return tr
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	require.True(t, ok)
	return next, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// readyApp returns a sized App past both gates with the initial load done.
func readyApp(t *testing.T, sb *stubBackend) App {
	t.Helper()
	tr := newTestTracker(t, sb)
	ctx := context.Background()
	_, err := tr.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, tr.Refresh(ctx))

	a := NewApp(tr, Options{})
	require.Nil(t, a.form)
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	a, _ = update(t, a, opDoneMsg{op: opRefresh})
	require.Empty(t, a.busy)
	return a
}

func sampleBackend() *stubBackend {
	return &stubBackend{
		budget:     decimal.NewFromInt(500),
		categories: []model.Category{{ID: "c1", Name: "Home"}, {ID: "c2", Name: "Food"}},
		expenses: []model.Expense{
			{ID: "e1", Name: "Rent", Amount: decimal.NewFromInt(300), Date: "2024-01-01", CategoryID: "c1"},
			{ID: "e2", Name: "Groceries", Amount: decimal.NewFromInt(100), Date: "2024-01-03", CategoryID: "c2"},
		},
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			assert.Equal(t, i, a.tabAtX(x), "active=%d x=%d", active, x)
			pos += w + 1
		}
		assert.Equal(t, -1, a.tabAtX(pos+50))
	}
}

func TestNewAppStartsAtAuthGate(t *testing.T) {
	a := NewApp(newTestTracker(t, &stubBackend{}), Options{})
	require.NotNil(t, a.form)
	assert.Equal(t, formAuth, a.formKind)

	// Gate forms cannot be dismissed with esc.
	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, formAuth, a.formKind)
}

func TestSetupWizardComesFirst(t *testing.T) {
	a := NewApp(newTestTracker(t, &stubBackend{}), Options{NeedSetup: true})
	assert.Equal(t, formSetup, a.formKind)
}

func TestLoginWithoutBudgetOpensBudgetGate(t *testing.T) {
	tr := newTestTracker(t, &stubBackend{})
	a := NewApp(tr, Options{})

	_, err := tr.Login(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)
	a.vals.Password = "pw"
	a, _ = update(t, a, opDoneMsg{op: opLogin, form: formAuth})

	assert.Equal(t, formBudgetGate, a.formKind)
	assert.Empty(t, a.vals.Password, "password is not kept after submit")
}

func TestLoginWithBudgetLoadsDashboard(t *testing.T) {
	tr := newTestTracker(t, sampleBackend())
	a := NewApp(tr, Options{})

	_, err := tr.Login(context.Background(), "ana@example.com", "pw")
	require.NoError(t, err)
	a, cmd := update(t, a, opDoneMsg{op: opLogin, form: formAuth})

	assert.Nil(t, a.form)
	assert.Equal(t, "Loading expenses", a.busy)
	assert.NotNil(t, cmd)
}

func TestLoginFailureReopensAuthFormWithBanner(t *testing.T) {
	a := NewApp(newTestTracker(t, &stubBackend{}), Options{})
	a.vals.Email = "ana@example.com"
	a.form = nil

	a, _ = update(t, a, opDoneMsg{op: opLogin, form: formAuth, err: &apperr.AuthError{Reason: "invalid credentials", Status: 401}})
	assert.Equal(t, formAuth, a.formKind)
	assert.Equal(t, components.BannerError, a.banner.Kind)
	assert.Equal(t, "ana@example.com", a.vals.Email, "email survives a failed attempt")
}

func TestRegisterSuccessReturnsToLogin(t *testing.T) {
	a := NewApp(newTestTracker(t, &stubBackend{}), Options{})
	a.vals.AuthMode = authRegister
	a.vals.Name, a.vals.Budget = "Ana", "500"

	a, _ = update(t, a, opDoneMsg{op: opRegister, form: formAuth, note: "Account created, sign in"})
	assert.Equal(t, formAuth, a.formKind)
	assert.Equal(t, authLogin, a.vals.AuthMode)
	assert.Equal(t, components.Banner{Kind: components.BannerSuccess, Text: "Account created, sign in"}, a.banner)
}

func TestValidationErrorReopensExpenseForm(t *testing.T) {
	a := readyApp(t, sampleBackend())
	a.vals.Expense = model.ExpenseDraft{Name: "Laptop", Amount: "250", Date: "2024-01-05"}

	a, _ = update(t, a, opDoneMsg{
		op:   opExpenseSave,
		form: formExpenseAdd,
		err:  apperr.Validation("amount", apperr.MsgInsufficient),
	})

	assert.Equal(t, formExpenseAdd, a.formKind)
	assert.Equal(t, "Laptop", a.vals.Expense.Name)
	assert.Equal(t, "insufficient budget", a.banner.Text)
}

func TestNetworkErrorKeepsDashboard(t *testing.T) {
	a := readyApp(t, sampleBackend())
	a, _ = update(t, a, opDoneMsg{op: opExpenseDelete, err: &apperr.NetworkError{Op: "delete expense"}})
	assert.Nil(t, a.form)
	assert.Equal(t, components.BannerError, a.banner.Kind)
}

func TestSessionEndedResponsesAreIgnored(t *testing.T) {
	a := readyApp(t, sampleBackend())
	a.banner = components.Banner{Kind: components.BannerInfo, Text: "Signed out"}
	a.busy = "Saving expense"

	a, _ = update(t, a, opDoneMsg{op: opExpenseSave, err: tracker.ErrSessionEnded})
	assert.Equal(t, "Signed out", a.banner.Text)
	assert.Empty(t, a.busy)
}

func TestLogoutReturnsToAuthGate(t *testing.T) {
	a := readyApp(t, sampleBackend())
	a.activeTab = tabExpenses
	a.expCursor = 1

	a, _ = update(t, a, key("L"))
	assert.Equal(t, formAuth, a.formKind)
	assert.False(t, a.tr.IsAuthenticated())
	assert.Equal(t, tabOverview, a.activeTab)
	assert.Zero(t, a.expCursor)
	assert.Empty(t, a.tr.Expenses())
	assert.Equal(t, "Signed out", a.banner.Text)
}

func TestExpenseKeysOpenForms(t *testing.T) {
	a := readyApp(t, sampleBackend())
	a, _ = update(t, a, key("2"))
	require.Equal(t, tabExpenses, a.activeTab)

	// Newest first: Groceries (Jan 3) then Rent.
	a, _ = update(t, a, key("j"))
	assert.Equal(t, 1, a.expCursor)
	a, _ = update(t, a, key("e"))
	require.Equal(t, formExpenseEdit, a.formKind)
	assert.Equal(t, "e1", a.vals.EditID)
	assert.Equal(t, "Rent", a.vals.Expense.Name)
	assert.Equal(t, "300", a.vals.Expense.Amount)

	a, _ = update(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, a.form)

	a, _ = update(t, a, key("d"))
	require.Equal(t, formExpenseDelete, a.formKind)
	assert.Contains(t, a.vals.Prompt, "Rent")
}

func TestBudgetKeyPrefillsEditForm(t *testing.T) {
	a := readyApp(t, sampleBackend())
	a, _ = update(t, a, key("b"))
	assert.Equal(t, formBudgetEdit, a.formKind)
	assert.Equal(t, "500", a.vals.Budget)
}

func TestActionsWaitWhileBusy(t *testing.T) {
	a := readyApp(t, sampleBackend())
	a.busy = "Refreshing"
	a, _ = update(t, a, key("b"))
	assert.Nil(t, a.form)
}

func TestOverviewShowsTotals(t *testing.T) {
	a := readyApp(t, sampleBackend())
	out := a.View()

	assert.Contains(t, out, "Remaining")
	assert.Contains(t, out, "$100.00", "remaining = 500 - 400")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "Home")
}

func TestViewTooNarrow(t *testing.T) {
	a := readyApp(t, sampleBackend())
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 40, Height: 20})
	assert.True(t, strings.Contains(a.View(), "too narrow"))
}
