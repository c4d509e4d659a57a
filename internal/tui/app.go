// Package tui provides the interactive Bubble Tea dashboard for gastos.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/config"
	"github.com/theirongolddev/gastos/internal/model"
	"github.com/theirongolddev/gastos/internal/tracker"
	"github.com/theirongolddev/gastos/internal/tui/components"
	"github.com/theirongolddev/gastos/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type opKind int

const (
	opLogin opKind = iota
	opRegister
	opBudgetGate
	opBudgetEdit
	opRefresh
	opExpenseSave
	opExpenseDelete
	opCategoryAdd
	opCategoryDelete
	opProfileLoad
	opProfileSave
	opPhoto
)

// opDoneMsg is sent when a backend call started by the App returns.
type opDoneMsg struct {
	op   opKind
	form formKind // form to reopen on a validation error
	note string   // success banner
	err  error
}

const (
	tabOverview = iota
	tabExpenses
	tabCategories
	tabProfile
)

// Options configures NewApp.
type Options struct {
	Config config.Config
	// NeedSetup shows the first-run wizard before the auth gate.
	NeedSetup bool
}

// App is the root Bubble Tea model.
type App struct {
	tr  *tracker.Tracker
	cfg config.Config

	// ctx is cancelled on quit so in-flight requests stop.
	ctx    context.Context
	cancel context.CancelFunc

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Active huh form, nil on the dashboard.
	form     *huh.Form
	formKind formKind
	vals     *formValues

	spinner spinner.Model
	busy    string
	banner  components.Banner

	expCursor        int
	catCursor        int
	profileRequested bool
	lastRefresh      time.Time
}

const (
	minTerminalWidth = 60
	compactWidth     = 100
	maxContentWidth  = 140
	minContentHeight = 5
	maxFormWidth     = 72
)

// NewApp creates the dashboard over a tracker that has already been seeded
// from the local store.
func NewApp(tr *tracker.Tracker, opts Options) App {
	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		tr:      tr,
		cfg:     opts.Config,
		ctx:     ctx,
		cancel:  cancel,
		vals:    &formValues{Email: tr.Session().Email},
		spinner: sp,
	}

	switch {
	case opts.NeedSetup:
		a.form, a.formKind = newSetupForm(a.vals, a.cfg), formSetup
	case tr.Phase() != tracker.PhaseReady:
		a.form, a.formKind = a.buildForm(a.gateKind()), a.gateKind()
	default:
		a.busy = "Loading expenses"
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.form != nil {
		cmds = append(cmds, a.form.Init())
	}
	if a.busy != "" {
		cmds = append(cmds, a.spinner.Tick, a.call(opRefresh, formNone, a.refreshFn()))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a.quit()
		}
		if a.form != nil {
			if key == "esc" && !a.formKind.gate() {
				a.form, a.formKind = nil, formNone
				return a, nil
			}
			return a.updateForm(msg)
		}
		return a.updateKeys(key)

	case tea.MouseMsg:
		if a.form != nil || a.showHelp {
			return a, nil
		}
		return a.updateMouse(msg)

	case opDoneMsg:
		return a.handleDone(msg)

	case spinner.TickMsg:
		if a.busy == "" {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.cancel()
	a.tr.Close()
	return a, tea.Quit
}

func (a App) idle() bool {
	return a.busy == ""
}

// call runs fn off the UI goroutine and reports back with an opDoneMsg.
func (a App) call(op opKind, form formKind, fn func(ctx context.Context) (string, error)) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		note, err := fn(ctx)
		return opDoneMsg{op: op, form: form, note: note, err: err}
	}
}

func (a App) start(op opKind, form formKind, label string, fn func(ctx context.Context) (string, error)) (tea.Model, tea.Cmd) {
	a.busy = label
	a.banner = components.Banner{}
	return a, tea.Batch(a.spinner.Tick, a.call(op, form, fn))
}

func (a App) refreshFn() func(ctx context.Context) (string, error) {
	tr := a.tr
	return func(ctx context.Context) (string, error) {
		return "", tr.Refresh(ctx)
	}
}

// ─── Forms ──────────────────────────────────────────────────────

func (a App) formWidth() int {
	return max(min(a.width-8, maxFormWidth), 30)
}

func (a App) gateKind() formKind {
	if a.tr.Phase() == tracker.PhaseUnauthenticated {
		return formAuth
	}
	return formBudgetGate
}

func (a App) buildForm(kind formKind) *huh.Form {
	v := a.vals
	switch kind {
	case formAuth:
		return newAuthForm(v)
	case formBudgetGate:
		return newBudgetForm(v, true)
	case formBudgetEdit:
		return newBudgetForm(v, false)
	case formExpenseAdd, formExpenseEdit:
		return newExpenseForm(v, a.tr.Categories())
	case formExpenseDelete, formCategoryDelete:
		return newConfirmForm(v)
	case formCategoryAdd:
		return newCategoryForm(v)
	case formProfile:
		return newProfileForm(v)
	case formPhoto:
		return newPhotoForm(v)
	case formSetup:
		return newSetupForm(v, a.cfg)
	}
	return nil
}

func (a App) openForm(kind formKind) (tea.Model, tea.Cmd) {
	a.form, a.formKind = a.buildForm(kind), kind
	if a.form == nil {
		a.formKind = formNone
		return a, nil
	}
	if a.width > 0 {
		a.form = a.form.WithWidth(a.formWidth())
	}
	return a, a.form.Init()
}

// openGate shows whichever gate the tracker is stuck at, or loads the
// dashboard when both are passed.
func (a App) openGate() (tea.Model, tea.Cmd) {
	if a.tr.Phase() == tracker.PhaseReady {
		// Keep the banner from whatever step got us here.
		banner := a.banner
		m, cmd := a.start(opRefresh, formNone, "Loading expenses", a.refreshFn())
		next := m.(App)
		next.banner = banner
		return next, cmd
	}
	return a.openForm(a.gateKind())
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a.form, a.formKind = nil, formNone
		return a.submit(kind)
	case huh.StateAborted:
		if a.formKind.gate() {
			return a.quit()
		}
		a.form, a.formKind = nil, formNone
		return a, nil
	}
	return a, cmd
}

func (a App) submit(kind formKind) (tea.Model, tea.Cmd) {
	v, tr := a.vals, a.tr

	switch kind {
	case formAuth:
		email, password := v.Email, v.Password
		if v.AuthMode == authRegister {
			name, budget := v.Name, v.Budget
			return a.start(opRegister, kind, "Creating account", func(ctx context.Context) (string, error) {
				_, err := tr.Register(ctx, name, email, password, budget)
				return "Account created, sign in", err
			})
		}
		return a.start(opLogin, kind, "Signing in", func(ctx context.Context) (string, error) {
			_, err := tr.Login(ctx, email, password)
			return "", err
		})

	case formBudgetGate, formBudgetEdit:
		amount := v.Budget
		op, note := opBudgetEdit, "Budget updated"
		if kind == formBudgetGate {
			op, note = opBudgetGate, "Budget saved"
		}
		return a.start(op, kind, "Saving budget", func(ctx context.Context) (string, error) {
			var err error
			if kind == formBudgetGate {
				_, err = tr.SetBudget(ctx, amount)
			} else {
				_, err = tr.EditBudget(ctx, amount)
			}
			return note, err
		})

	case formExpenseAdd:
		draft := v.Expense
		return a.start(opExpenseSave, kind, "Saving expense", func(ctx context.Context) (string, error) {
			_, err := tr.CreateExpense(ctx, draft)
			return "Expense added", err
		})

	case formExpenseEdit:
		id, draft := v.EditID, v.Expense
		return a.start(opExpenseSave, kind, "Saving expense", func(ctx context.Context) (string, error) {
			_, err := tr.UpdateExpense(ctx, id, draft)
			return "Expense updated", err
		})

	case formExpenseDelete:
		if !v.Confirm {
			return a, nil
		}
		id := v.EditID
		return a.start(opExpenseDelete, kind, "Deleting expense", func(ctx context.Context) (string, error) {
			return "Expense deleted", tr.DeleteExpense(ctx, id)
		})

	case formCategoryAdd:
		name := v.Category
		return a.start(opCategoryAdd, kind, "Saving category", func(ctx context.Context) (string, error) {
			_, err := tr.CreateCategory(ctx, name)
			return "Category added", err
		})

	case formCategoryDelete:
		if !v.Confirm {
			return a, nil
		}
		id := v.EditID
		return a.start(opCategoryDelete, kind, "Deleting category", func(ctx context.Context) (string, error) {
			return "Category deleted", tr.DeleteCategory(ctx, id)
		})

	case formProfile:
		name, email, phone := v.Name, v.Email, v.Phone
		return a.start(opProfileSave, kind, "Saving profile", func(ctx context.Context) (string, error) {
			_, err := tr.UpdateProfile(ctx, name, email, phone)
			return "Profile updated", err
		})

	case formPhoto:
		path := v.PhotoPath
		return a.start(opPhoto, kind, "Uploading photo", func(ctx context.Context) (string, error) {
			_, err := tr.UploadPhoto(ctx, path)
			return "Photo uploaded", err
		})

	case formSetup:
		prevURL := a.cfg.API.BaseURL
		cfg, err := saveSetupConfig(v, a.cfg)
		a.cfg = cfg
		switch {
		case err != nil:
			a.banner = components.Banner{Kind: components.BannerError, Text: "could not save config: " + err.Error()}
		case cfg.API.BaseURL != prevURL:
			a.banner = components.Banner{Kind: components.BannerInfo, Text: "Saved. The new service URL applies on next launch"}
		default:
			a.banner = components.Banner{Kind: components.BannerSuccess, Text: "Settings saved"}
		}
		return a.openGate()
	}
	return a, nil
}

func (a App) handleDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	a.busy = ""
	if errors.Is(msg.err, tracker.ErrSessionEnded) || errors.Is(msg.err, context.Canceled) {
		return a, nil
	}

	switch {
	case msg.err != nil:
		a.banner = components.Banner{Kind: components.BannerError, Text: apperr.UserMessage(msg.err)}
	case msg.note != "":
		a.banner = components.Banner{Kind: components.BannerSuccess, Text: msg.note}
	}

	switch msg.op {
	case opLogin:
		a.vals.resetSecrets()
		if msg.err == nil {
			a.activeTab = tabOverview
		}
		return a.openGate()

	case opRegister:
		a.vals.resetSecrets()
		if msg.err == nil {
			a.vals.AuthMode = authLogin
			a.vals.Name, a.vals.Budget = "", ""
		}
		return a.openGate()

	case opBudgetGate:
		return a.openGate()

	case opRefresh:
		if msg.err == nil {
			a.lastRefresh = time.Now()
		}

	default:
		// Validation failures reopen the form with the user's input intact.
		if apperr.IsValidation(msg.err) && msg.form != formNone {
			a.clampCursors()
			return a.openForm(msg.form)
		}
	}

	a.clampCursors()
	return a, nil
}

// ─── Keys ───────────────────────────────────────────────────────

func (a App) updateKeys(key string) (tea.Model, tea.Cmd) {
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}
	if a.tr.Phase() != tracker.PhaseReady {
		if key == "q" {
			return a.quit()
		}
		return a, nil
	}

	switch key {
	case "q":
		return a.quit()
	case "?":
		a.showHelp = true
		return a, nil
	case "left", "shift+tab":
		return a.setTab((a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs))
	case "right", "tab":
		return a.setTab((a.activeTab + 1) % len(components.Tabs))
	case "L":
		return a.logout()
	}
	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			return a.setTab(idx)
		}
	}

	if !a.idle() {
		return a, nil
	}

	switch key {
	case "r":
		return a.start(opRefresh, formNone, "Refreshing", a.refreshFn())
	case "b":
		a.vals.Budget = a.tr.Budget().Total.String()
		return a.openForm(formBudgetEdit)
	}

	switch a.activeTab {
	case tabExpenses:
		return a.updateExpensesKeys(key)
	case tabCategories:
		return a.updateCategoriesKeys(key)
	case tabProfile:
		return a.updateProfileKeys(key)
	}
	return a, nil
}

func (a App) setTab(idx int) (tea.Model, tea.Cmd) {
	a.activeTab = idx
	if idx == tabProfile && !a.profileRequested && a.idle() {
		a.profileRequested = true
		tr := a.tr
		return a.start(opProfileLoad, formNone, "Loading profile", func(ctx context.Context) (string, error) {
			_, err := tr.FetchProfile(ctx)
			return "", err
		})
	}
	return a, nil
}

func (a App) logout() (tea.Model, tea.Cmd) {
	err := a.tr.Logout()

	a.busy = ""
	a.activeTab = tabOverview
	a.expCursor, a.catCursor = 0, 0
	a.profileRequested = false
	a.showHelp = false
	a.vals = &formValues{}
	a.banner = components.Banner{Kind: components.BannerInfo, Text: "Signed out"}
	if err != nil {
		a.banner = components.Banner{Kind: components.BannerError, Text: apperr.UserMessage(err)}
	}
	return a.openForm(formAuth)
}

func moveCursor(cur, n int, key string) int {
	switch key {
	case "j", "down":
		cur++
	case "k", "up":
		cur--
	case "g", "home":
		cur = 0
	case "G", "end":
		cur = n - 1
	}
	return min(max(cur, 0), max(n-1, 0))
}

func (a *App) clampCursors() {
	a.expCursor = moveCursor(a.expCursor, len(a.tr.Expenses()), "")
	a.catCursor = moveCursor(a.catCursor, len(a.tr.Categories()), "")
}

// ─── Mouse ──────────────────────────────────────────────────────

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		key := "j"
		if msg.Button == tea.MouseButtonWheelUp {
			key = "k"
		}
		switch a.activeTab {
		case tabExpenses:
			a.expCursor = moveCursor(a.expCursor, len(a.tr.Expenses()), key)
		case tabCategories:
			a.catCursor = moveCursor(a.catCursor, len(a.tr.Categories()), key)
		}
		return a, nil

	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				return a.setTab(tab)
			}
		}
	}
	return a, nil
}

func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		// Must match RenderTabBar: labels joined by a single space.
		w := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}

// ─── Views ──────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.tr.Phase() != tracker.PhaseReady {
		return a.viewBusy()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  gastos needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) bannerLine() string {
	t := theme.Active
	if a.banner.Kind == components.BannerNone || a.banner.Text == "" {
		return ""
	}
	color := t.TextPrimary
	switch a.banner.Kind {
	case components.BannerError:
		color = t.Over
	case components.BannerSuccess:
		color = t.Remaining
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(a.banner.Text)
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Focus).
		Padding(1, 2)
	logoStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ gastos"))
	b.WriteString(titleStyle.Render("  " + a.formKind.title()))
	b.WriteString("\n\n")
	if line := a.bannerLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	b.WriteString(a.form.View())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewBusy() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Focus).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	label := a.busy
	if label == "" {
		label = "Waiting"
	}
	body := logoStyle.Render("◈ gastos") + "\n\n" +
		a.spinner.View() + subtitleStyle.Render(" "+label+"...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

var helpSections = []struct {
	title string
	keys  [][2]string
}{
	{"Navigation", [][2]string{
		{"1-4", "switch tab"},
		{"←/→ tab", "previous / next tab"},
		{"j/k ↑/↓", "move selection"},
		{"g/G", "first / last"},
	}},
	{"Budget", [][2]string{
		{"b", "edit budget"},
		{"r", "refresh from server"},
	}},
	{"Expenses & categories", [][2]string{
		{"a", "add"},
		{"e enter", "edit expense"},
		{"d", "delete"},
	}},
	{"Profile", [][2]string{
		{"e", "edit profile"},
		{"p", "upload photo"},
	}},
	{"Session", [][2]string{
		{"L", "sign out"},
		{"? / q", "help / quit"},
	}},
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Focus).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(10)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	for i, sec := range helpSections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(sec.title))
		b.WriteString("\n")
		for _, k := range sec.keys {
			b.WriteString(keyStyle.Render(k[0]))
			b.WriteString(descStyle.Render(k[1]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(descStyle.Render("press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) hints() string {
	switch a.activeTab {
	case tabExpenses:
		return "[a]dd [e]dit [d]elete  [b]udget [?]help [q]uit"
	case tabCategories:
		return "[a]dd [d]elete  [b]udget [?]help [q]uit"
	case tabProfile:
		return "[e]dit [p]hoto  [L]ogout [?]help [q]uit"
	}
	return "[b]udget [r]efresh [?]help [q]uit"
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w, "◈ gastos")

	busy := ""
	if a.busy != "" {
		busy = a.spinner.View() + " " + a.busy
	}
	statusBar := components.RenderStatusBar(w, a.hints(), a.banner, busy)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabExpenses:
		content = a.renderExpensesTab(cw, contentH)
	case tabCategories:
		content = a.renderCategoriesTab(cw, contentH)
	case tabProfile:
		content = a.renderProfileTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background color
// so gaps between cards are not left unstyled.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// selectedExpense returns the expense under the cursor in display order.
func (a App) selectedExpense() (model.Expense, bool) {
	list := a.sortedExpenses()
	if a.expCursor < 0 || a.expCursor >= len(list) {
		return model.Expense{}, false
	}
	return list[a.expCursor], true
}

func (a App) selectedCategory() (model.Category, bool) {
	list := a.tr.Categories()
	if a.catCursor < 0 || a.catCursor >= len(list) {
		return model.Category{}, false
	}
	return list[a.catCursor], true
}
