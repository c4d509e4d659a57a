package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
	"github.com/theirongolddev/gastos/internal/tracker"

	"github.com/charmbracelet/huh"
)

type formKind int

const (
	formNone formKind = iota
	formAuth
	formBudgetGate
	formBudgetEdit
	formExpenseAdd
	formExpenseEdit
	formExpenseDelete
	formCategoryAdd
	formCategoryDelete
	formProfile
	formPhoto
	formSetup
)

// gate forms cannot be dismissed; the dashboard is unreachable without them.
func (k formKind) gate() bool {
	return k == formAuth || k == formBudgetGate || k == formSetup
}

func (k formKind) title() string {
	switch k {
	case formAuth:
		return "Sign in"
	case formBudgetGate:
		return "Set your budget"
	case formBudgetEdit:
		return "Edit budget"
	case formExpenseAdd:
		return "New expense"
	case formExpenseEdit:
		return "Edit expense"
	case formExpenseDelete:
		return "Delete expense"
	case formCategoryAdd:
		return "New category"
	case formCategoryDelete:
		return "Delete category"
	case formProfile:
		return "Edit profile"
	case formPhoto:
		return "Profile photo"
	case formSetup:
		return "Welcome to gastos"
	}
	return ""
}

const (
	authLogin    = "login"
	authRegister = "register"
)

// formValues backs every huh form. Forms bind to its fields by pointer, so
// it is shared by all copies of App.
type formValues struct {
	AuthMode string
	Email    string
	Password string
	Name     string
	Budget   string

	Expense   model.ExpenseDraft
	EditID    string // expense or category being edited/deleted
	Category  string
	Confirm   bool
	Prompt    string // confirm question
	Phone     string
	PhotoPath string
	APIURL    string
	Currency  string
	Theme     string
}

func (v *formValues) resetSecrets() {
	v.Password = ""
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(apperr.MsgRequired)
	}
	return nil
}

func validBudget(s string) error {
	if _, err := tracker.ValidateBudget(s); err != nil {
		return errors.New(apperr.UserMessage(err))
	}
	return nil
}

func validAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(apperr.MsgRequired)
	}
	if d, err := tracker.ParseAmount(s); err != nil || !d.IsPositive() {
		return errors.New(apperr.MsgInvalidAmount)
	}
	return nil
}

func validDate(s string) error {
	if _, err := tracker.ParseDate(s); err != nil {
		return errors.New(apperr.MsgInvalidDate)
	}
	return nil
}

func newAuthForm(v *formValues) *huh.Form {
	if v.AuthMode == "" {
		v.AuthMode = authLogin
	}
	hideLogin := func() bool { return v.AuthMode != authLogin }
	hideRegister := func() bool { return v.AuthMode != authRegister }

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Account").
				Options(
					huh.NewOption("Sign in", authLogin),
					huh.NewOption("Create an account", authRegister),
				).
				Value(&v.AuthMode),
		),
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&v.Email).Validate(required),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&v.Password).Validate(required),
		).WithHideFunc(hideLogin),
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name).Validate(required),
			huh.NewInput().Title("Email").Value(&v.Email).Validate(required),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&v.Password).Validate(required),
			huh.NewInput().
				Title("Initial budget").
				Description("Total amount you plan to spend").
				Value(&v.Budget).
				Validate(validBudget),
		).WithHideFunc(hideRegister),
	).WithShowHelp(true)
}

func newBudgetForm(v *formValues, gate bool) *huh.Form {
	desc := "Update the total you plan to spend"
	if gate {
		desc = "You need a budget before recording expenses"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Budget").
				Description(desc).
				Placeholder("500").
				Value(&v.Budget).
				Validate(validBudget),
		),
	).WithShowHelp(true)
}

func categoryOptions(categories []model.Category) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("No category", "")}
	for _, c := range categories {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	return opts
}

func newExpenseForm(v *formValues, categories []model.Category) *huh.Form {
	if v.Expense.Date == "" {
		v.Expense.Date = time.Now().Format("2006-01-02")
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Expense.Name).Validate(required),
			huh.NewInput().Title("Amount").Placeholder("0.00").Value(&v.Expense.Amount).Validate(validAmount),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&v.Expense.Date).Validate(validDate),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions(categories)...).
				Value(&v.Expense.CategoryID),
			huh.NewText().Title("Description").Lines(3).Value(&v.Expense.Description),
		),
	).WithShowHelp(true)
}

func newConfirmForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(v.Prompt).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&v.Confirm),
		),
	)
}

func newCategoryForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Category name").Value(&v.Category).Validate(required),
		),
	).WithShowHelp(true)
}

func newProfileForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&v.Name).Validate(required),
			huh.NewInput().Title("Email").Value(&v.Email).Validate(required),
			huh.NewInput().Title("Phone").Value(&v.Phone),
		),
	).WithShowHelp(true)
}

func newPhotoForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Image file").
				Description("Path to a JPEG or PNG on this machine").
				Value(&v.PhotoPath).
				Validate(required),
		),
	).WithShowHelp(true)
}
