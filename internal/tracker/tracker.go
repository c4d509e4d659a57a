package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/theirongolddev/gastos/internal/api"
	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
	"github.com/theirongolddev/gastos/internal/store"
)

// ErrSessionEnded is returned when a response arrives after the session that
// issued it was logged out. The response is discarded.
var ErrSessionEnded = errors.New("tracker: session ended")

// Backend is the subset of the REST client the tracker drives.
// *api.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, email, password string) (api.LoginResult, error)
	Register(ctx context.Context, in api.RegisterInput) (model.Profile, error)
	GetUser(ctx context.Context, id string) (model.Profile, error)
	UpdateUser(ctx context.Context, id, name, email, phone string) error
	UpdateBudget(ctx context.Context, id string, total decimal.Decimal) error
	UploadPhoto(ctx context.Context, id, filename string, r io.Reader) (string, error)
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	CreateExpense(ctx context.Context, in api.ExpenseInput) (model.Expense, error)
	UpdateExpense(ctx context.Context, id string, in api.ExpenseInput) (model.Expense, error)
	DeleteExpense(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Phase is where the user is in the auth and budget gates.
type Phase int

const (
	PhaseUnauthenticated Phase = iota
	PhaseNeedsBudget
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseNeedsBudget:
		return "needs-budget"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Tracker owns the in-memory view of the user's budget and expenses and is
// the only writer of the persisted store.
//
// Every remote call is bound to the current session: Logout cancels the
// session context, and a response that still lands afterwards is dropped
// because its generation no longer matches.
type Tracker struct {
	backend Backend
	store   *store.Store
	log     *zap.Logger

	mu            sync.Mutex
	gen           uint64
	sessCtx       context.Context
	cancel        context.CancelFunc
	budget        model.Budget
	expenses      []model.Expense
	categories    []model.Category
	profile       model.Profile
	profileLoaded bool
}

// New creates a tracker seeded from whatever the store has cached.
func New(b Backend, st *store.Store, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tracker{backend: b, store: st, log: log}
	t.sessCtx, t.cancel = context.WithCancel(context.Background())

	if budget, err := st.Budget(); err == nil {
		t.budget = budget
	} else {
		log.Warn("reading cached budget", zap.Error(err))
	}
	if cached, err := st.Expenses(); err == nil {
		t.expenses = cached
	} else {
		log.Warn("reading cached expenses", zap.Error(err))
	}
	return t
}

// bind derives a request context that is also canceled when the current
// session ends, and returns the session generation it belongs to.
func (t *Tracker) bind(ctx context.Context) (context.Context, context.CancelFunc, uint64) {
	t.mu.Lock()
	sess, gen := t.sessCtx, t.gen
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(sess, cancel)
	return ctx, func() {
		stop()
		cancel()
	}, gen
}

// stale reports whether gen belongs to an ended session. Caller holds mu.
func (t *Tracker) stale(gen uint64) bool {
	return gen != t.gen
}

func (t *Tracker) userID() (string, error) {
	sess, err := t.store.Session()
	if err != nil {
		return "", err
	}
	if !sess.Authenticated() {
		return "", &apperr.AuthError{Reason: "not logged in"}
	}
	if sess.UserID == "" {
		return "", &apperr.AuthError{Reason: "session has no user id, log in again"}
	}
	return sess.UserID, nil
}

// Session returns the persisted session.
func (t *Tracker) Session() model.Session {
	sess, err := t.store.Session()
	if err != nil {
		t.log.Warn("reading session", zap.Error(err))
	}
	return sess
}

// IsAuthenticated is true when a token is stored. No server round-trip.
func (t *Tracker) IsAuthenticated() bool {
	return t.store.IsAuthenticated()
}

// Phase reports which gate the user is at.
func (t *Tracker) Phase() Phase {
	if !t.IsAuthenticated() {
		return PhaseUnauthenticated
	}
	if !t.Budget().IsSet() {
		return PhaseNeedsBudget
	}
	return PhaseReady
}

// Login authenticates, persists the session and pulls the profile. A failed
// profile fetch does not fail the login; the cached budget is used instead.
// Cached state only survives when the same user signs in again.
func (t *Tracker) Login(ctx context.Context, email, password string) (model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return model.Session{}, apperr.Validation("", apperr.MsgRequired)
	}

	bctx, done, gen := t.bind(ctx)
	defer done()

	res, err := t.backend.Login(bctx, email, password)
	if err != nil {
		t.log.Info("login failed", zap.String("email", email), zap.Error(err))
		return model.Session{}, err
	}

	t.mu.Lock()
	if t.stale(gen) {
		t.mu.Unlock()
		return model.Session{}, ErrSessionEnded
	}
	err = t.switchUserLocked(res.Session.UserID)
	if err == nil {
		err = t.store.SaveSession(res.Session)
	}
	t.mu.Unlock()
	if err != nil {
		return model.Session{}, fmt.Errorf("saving session: %w", err)
	}
	t.log.Info("logged in", zap.String("user_id", res.Session.UserID))

	if err := t.SyncProfile(ctx); err != nil {
		t.log.Warn("profile sync after login", zap.Error(err))
	}
	return res.Session, nil
}

// switchUserLocked drops the previous user's session and cached data unless
// userID matches the stored session. Caller holds mu.
func (t *Tracker) switchUserLocked(userID string) error {
	prev, err := t.store.Session()
	if err == nil && userID != "" && prev.UserID == userID {
		return nil
	}
	if prev.UserID != "" {
		t.log.Info("switching user, clearing cached state", zap.String("previous", prev.UserID))
	}
	t.resetLocked()
	return t.store.Clear()
}

// resetLocked ends the current session generation and forgets every
// per-user field. Caller holds mu.
func (t *Tracker) resetLocked() {
	t.cancel()
	t.gen++
	t.sessCtx, t.cancel = context.WithCancel(context.Background())
	t.budget = model.Budget{}
	t.expenses = nil
	t.categories = nil
	t.profile = model.Profile{}
	t.profileLoaded = false
}

// Register creates an account. The initial budget is validated before any
// request is made. It does not log in.
func (t *Tracker) Register(ctx context.Context, name, email, password, initialBudget string) (model.Profile, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return model.Profile{}, apperr.Validation("", apperr.MsgRequired)
	}
	budget, err := ValidateBudget(initialBudget)
	if err != nil {
		return model.Profile{}, err
	}

	ctx, done, _ := t.bind(ctx)
	defer done()

	p, err := t.backend.Register(ctx, api.RegisterInput{
		Name:          name,
		Email:         email,
		Password:      password,
		InitialBudget: budget,
	})
	if err != nil {
		t.log.Info("register failed", zap.String("email", email), zap.Error(err))
		return model.Profile{}, err
	}
	t.log.Info("registered", zap.String("email", email))
	return p, nil
}

// Logout ends the session: in-flight requests are canceled, late responses
// are discarded and every persisted key is cleared.
func (t *Tracker) Logout() error {
	t.mu.Lock()
	t.resetLocked()
	err := t.store.Clear()
	t.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	t.log.Info("logged out")
	return nil
}

// Close cancels anything still in flight.
func (t *Tracker) Close() {
	t.mu.Lock()
	t.cancel()
	t.mu.Unlock()
}

// SyncProfile fetches the profile and adopts the server's budget. When the
// fetch fails the cached budget stays in effect and the error is returned.
func (t *Tracker) SyncProfile(ctx context.Context) error {
	id, err := t.userID()
	if err != nil {
		return err
	}

	ctx, done, gen := t.bind(ctx)
	defer done()

	p, err := t.backend.GetUser(ctx, id)
	if err != nil {
		t.log.Warn("fetching profile, using cached budget", zap.String("user_id", id), zap.Error(err))
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stale(gen) {
		return ErrSessionEnded
	}
	t.profile = p
	t.profileLoaded = true
	if p.Budget.IsSet() {
		t.budget = p.Budget
		if err := t.store.SaveBudget(p.Budget); err != nil {
			return fmt.Errorf("caching budget: %w", err)
		}
	}
	if p.PhotoURL != "" {
		if err := t.store.SavePhoto(p.PhotoURL); err != nil {
			return fmt.Errorf("caching photo: %w", err)
		}
	}
	return nil
}

// SetBudget validates and stores the first budget.
func (t *Tracker) SetBudget(ctx context.Context, amount string) (model.Budget, error) {
	return t.saveBudget(ctx, "set", amount)
}

// EditBudget overwrites an existing budget. The backend exposes a single
// update route, so it differs from SetBudget only in how the UI offers it.
func (t *Tracker) EditBudget(ctx context.Context, amount string) (model.Budget, error) {
	return t.saveBudget(ctx, "edit", amount)
}

// saveBudget writes the local cache first so totals render immediately,
// then persists remotely.
func (t *Tracker) saveBudget(ctx context.Context, op, amount string) (model.Budget, error) {
	total, err := ValidateBudget(amount)
	if err != nil {
		return model.Budget{}, err
	}
	id, err := t.userID()
	if err != nil {
		return model.Budget{}, err
	}
	b := model.Budget{Total: total}

	ctx, done, gen := t.bind(ctx)
	defer done()

	t.mu.Lock()
	t.budget = b
	err = t.store.SaveBudget(b)
	t.mu.Unlock()
	if err != nil {
		return model.Budget{}, fmt.Errorf("caching budget: %w", err)
	}

	if err := t.backend.UpdateBudget(ctx, id, total); err != nil {
		t.log.Warn("budget update failed", zap.String("op", op), zap.Error(err))
		return b, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stale(gen) {
		return model.Budget{}, ErrSessionEnded
	}
	t.profile.Budget = b
	t.log.Info("budget saved", zap.String("op", op), zap.String("total", total.String()))
	return b, nil
}

// Refresh re-fetches categories and expenses wholesale. A list whose fetch
// fails keeps its previous contents and the error is returned.
func (t *Tracker) Refresh(ctx context.Context) error {
	ctx, done, gen := t.bind(ctx)
	defer done()

	cats, catErr := t.backend.ListCategories(ctx)
	exps, expErr := t.backend.ListExpenses(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stale(gen) {
		return ErrSessionEnded
	}

	if catErr == nil {
		t.categories = cats
	} else {
		t.log.Warn("fetching categories", zap.Error(catErr))
	}
	if expErr == nil {
		t.expenses = exps
	} else {
		t.log.Warn("fetching expenses", zap.Error(expErr))
	}
	ResolveCategories(t.expenses, t.categories)

	if expErr == nil {
		if err := t.store.SaveExpenses(t.expenses); err != nil {
			t.log.Warn("caching expenses", zap.Error(err))
		}
	}
	t.log.Debug("refreshed", zap.Int("expenses", len(t.expenses)), zap.Int("categories", len(t.categories)))

	if expErr != nil {
		return expErr
	}
	return catErr
}

// CreateExpense validates the draft against the remaining budget, creates
// it remotely and then re-fetches the list. A refresh failure is returned
// alongside the created record.
func (t *Tracker) CreateExpense(ctx context.Context, d model.ExpenseDraft) (model.Expense, error) {
	in, err := ValidateExpense(d, t.Totals().Remaining, nil)
	if err != nil {
		return model.Expense{}, err
	}

	bctx, done, gen := t.bind(ctx)
	defer done()

	e, err := t.backend.CreateExpense(bctx, in)
	if err != nil {
		t.log.Warn("creating expense", zap.Error(err))
		return model.Expense{}, err
	}
	if t.isStale(gen) {
		return model.Expense{}, ErrSessionEnded
	}
	t.log.Info("expense created", zap.String("id", e.ID), zap.String("amount", in.Amount.String()))

	err = t.Refresh(ctx)
	e.CategoryName = ResolveCategoryName(e, t.Categories())
	return e, err
}

// UpdateExpense replaces the mutable fields of an existing expense.
func (t *Tracker) UpdateExpense(ctx context.Context, id string, d model.ExpenseDraft) (model.Expense, error) {
	current, ok := t.Expense(id)
	if !ok {
		return model.Expense{}, apperr.Validation("id", "unknown expense "+id)
	}
	in, err := ValidateExpense(d, t.Totals().Remaining, &current)
	if err != nil {
		return model.Expense{}, err
	}

	bctx, done, gen := t.bind(ctx)
	defer done()

	e, err := t.backend.UpdateExpense(bctx, current.ID, in)
	if err != nil {
		t.log.Warn("updating expense", zap.String("id", current.ID), zap.Error(err))
		return model.Expense{}, err
	}
	if t.isStale(gen) {
		return model.Expense{}, ErrSessionEnded
	}
	t.log.Info("expense updated", zap.String("id", current.ID), zap.String("amount", in.Amount.String()))

	err = t.Refresh(ctx)
	e.CategoryName = ResolveCategoryName(e, t.Categories())
	return e, err
}

// DeleteExpense removes an expense and re-fetches the list.
func (t *Tracker) DeleteExpense(ctx context.Context, id string) error {
	current, ok := t.Expense(id)
	if ok {
		id = current.ID
	}

	bctx, done, gen := t.bind(ctx)
	defer done()

	if err := t.backend.DeleteExpense(bctx, id); err != nil {
		t.log.Warn("deleting expense", zap.String("id", id), zap.Error(err))
		return err
	}
	if t.isStale(gen) {
		return ErrSessionEnded
	}
	t.log.Info("expense deleted", zap.String("id", id))
	return t.Refresh(ctx)
}

func (t *Tracker) isStale(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stale(gen)
}

// CreateCategory adds a category and re-fetches.
func (t *Tracker) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, apperr.Validation("name", apperr.MsgRequired)
	}

	bctx, done, gen := t.bind(ctx)
	defer done()

	c, err := t.backend.CreateCategory(bctx, name)
	if err != nil {
		return model.Category{}, err
	}
	if t.isStale(gen) {
		return model.Category{}, ErrSessionEnded
	}
	t.log.Info("category created", zap.String("id", c.ID), zap.String("name", c.Name))
	return c, t.Refresh(ctx)
}

// DeleteCategory removes a category and re-fetches.
func (t *Tracker) DeleteCategory(ctx context.Context, id string) error {
	if c, ok := FindCategory(t.Categories(), id); ok {
		id = c.ID
	}

	bctx, done, gen := t.bind(ctx)
	defer done()

	if err := t.backend.DeleteCategory(bctx, id); err != nil {
		return err
	}
	if t.isStale(gen) {
		return ErrSessionEnded
	}
	t.log.Info("category deleted", zap.String("id", id))
	return t.Refresh(ctx)
}

// FetchProfile returns the profile, loading it once per session.
func (t *Tracker) FetchProfile(ctx context.Context) (model.Profile, error) {
	t.mu.Lock()
	if t.profileLoaded {
		p := t.profile
		t.mu.Unlock()
		return p, nil
	}
	t.mu.Unlock()

	if err := t.SyncProfile(ctx); err != nil {
		return model.Profile{}, err
	}
	return t.Profile(), nil
}

// UpdateProfile replaces name, email and phone.
func (t *Tracker) UpdateProfile(ctx context.Context, name, email, phone string) (model.Profile, error) {
	name, email, phone = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(phone)
	if name == "" || email == "" {
		return model.Profile{}, apperr.Validation("", apperr.MsgRequired)
	}
	id, err := t.userID()
	if err != nil {
		return model.Profile{}, err
	}

	ctx, done, gen := t.bind(ctx)
	defer done()

	if err := t.backend.UpdateUser(ctx, id, name, email, phone); err != nil {
		return model.Profile{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stale(gen) {
		return model.Profile{}, ErrSessionEnded
	}
	t.profile.ID = id
	t.profile.Name, t.profile.Email, t.profile.Phone = name, email, phone
	if err := t.store.Set(store.KeyUserEmail, email); err != nil {
		return model.Profile{}, fmt.Errorf("caching email: %w", err)
	}
	t.log.Info("profile updated", zap.String("user_id", id))
	return t.profile, nil
}

// UploadPhoto sends the file at path and caches the returned URL.
func (t *Tracker) UploadPhoto(ctx context.Context, path string) (string, error) {
	id, err := t.userID()
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening photo: %w", err)
	}
	defer func() { _ = f.Close() }()

	ctx, done, gen := t.bind(ctx)
	defer done()

	url, err := t.backend.UploadPhoto(ctx, id, path, f)
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stale(gen) {
		return "", ErrSessionEnded
	}
	if url != "" {
		t.profile.PhotoURL = url
		if err := t.store.SavePhoto(url); err != nil {
			return "", fmt.Errorf("caching photo: %w", err)
		}
	}
	t.log.Info("photo uploaded", zap.String("url", url))
	return url, nil
}

// Budget returns the current budget.
func (t *Tracker) Budget() model.Budget {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.budget
}

// Totals derives the totals from the current budget and expenses.
func (t *Tracker) Totals() model.Totals {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ComputeTotals(t.budget, t.expenses)
}

// Expenses returns a copy of the current expense list.
func (t *Tracker) Expenses() []model.Expense {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.expenses)
}

// Expense finds an expense by id.
func (t *Tracker) Expense(id string) (model.Expense, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.expenses {
		if strings.EqualFold(e.ID, id) {
			return e, true
		}
	}
	return model.Expense{}, false
}

// Categories returns a copy of the current category list.
func (t *Tracker) Categories() []model.Category {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.categories)
}

// Profile returns the last fetched profile.
func (t *Tracker) Profile() model.Profile {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.profile
	if p.PhotoURL == "" {
		if sess, err := t.store.Session(); err == nil {
			p.PhotoURL = sess.PhotoURL
			if p.Email == "" {
				p.Email = sess.Email
			}
		}
	}
	return p
}
