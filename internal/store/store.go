// Package store provides the SQLite-backed local state for the client:
// the session, the last known budget and a cached copy of the expense list.
//
// A Store is the single writer for that state. Every mutation goes through
// its mutex, so concurrent commands and the TUI never interleave partial
// updates.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store persists key/value state in SQLite.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open opens or creates the state database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating state dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	return initStore(db, dbPath)
}

// OpenMemory opens a private in-memory store. Used by tests and --state=:memory:.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}
	// each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	return initStore(db, ":memory:")
}

func initStore(db *sql.DB, path string) (*Store, error) {
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// DefaultPath returns the default state database location.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".cache")
	}
	return filepath.Join(dir, "gastos", "state.db")
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key. The second result is false when the key is absent.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(key)
}

func (s *Store) get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return v, true, nil
}

// Set writes key. An empty value deletes it.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAll(map[string]string{key: value})
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	return s.Set(key, "")
}

// setAll applies every pair in one transaction. Caller holds mu.
func (s *Store) setAll(kv map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for k, v := range kv {
		if v == "" {
			_, err = tx.Exec("DELETE FROM kv WHERE key = ?", k)
		} else {
			_, err = tx.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
				k, v, now)
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// Clear removes every key in one transaction. This is logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM kv")
	return err
}

// Keys returns the keys currently stored, in key order.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Session loads the persisted session. A missing token yields the zero Session.
func (s *Store) Session() (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess model.Session
	for key, dst := range map[string]*string{
		KeyAuthToken:  &sess.Token,
		KeyUserID:     &sess.UserID,
		KeyUserEmail:  &sess.Email,
		KeyProfilePic: &sess.PhotoURL,
	} {
		v, _, err := s.get(key)
		if err != nil {
			return model.Session{}, err
		}
		*dst = v
	}
	return sess, nil
}

// SaveSession writes all session fields atomically.
func (s *Store) SaveSession(sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAll(map[string]string{
		KeyAuthToken:  sess.Token,
		KeyUserID:     sess.UserID,
		KeyUserEmail:  sess.Email,
		KeyProfilePic: sess.PhotoURL,
	})
}

// SavePhoto updates only the cached profile picture URL.
func (s *Store) SavePhoto(url string) error {
	return s.Set(KeyProfilePic, url)
}

// IsAuthenticated reports whether a token is stored.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Token implements api.TokenSource. Read errors are treated as no token.
func (s *Store) Token() string {
	v, _, err := s.Get(KeyAuthToken)
	if err != nil {
		return ""
	}
	return v
}

// Budget returns the last known budget. "budget" wins over the legacy
// "userBudget" key when both exist.
func (s *Store) Budget() (model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{KeyBudget, KeyUserBudget} {
		v, ok, err := s.get(key)
		if err != nil {
			return model.Budget{}, err
		}
		if !ok {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			continue
		}
		return model.Budget{Total: d}, nil
	}
	return model.Budget{}, nil
}

// SaveBudget writes the budget under both keys.
func (s *Store) SaveBudget(b model.Budget) error {
	v := ""
	if !b.Total.IsZero() {
		v = b.Total.String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAll(map[string]string{KeyBudget: v, KeyUserBudget: v})
}

type expenseRecord struct {
	ID               string          `json:"id"`
	Name             string          `json:"nombreGasto"`
	Amount           decimal.Decimal `json:"monto"`
	Date             string          `json:"fechaGasto"`
	Description      string          `json:"descripcion,omitempty"`
	CategoryID       string          `json:"categoriaID,omitempty"`
	CategoryName     string          `json:"nombreCategoria,omitempty"`
	EmbeddedCategory string          `json:"categoriaIncluida,omitempty"`
}

// Expenses returns the cached expense list, used when the server is unreachable.
func (s *Store) Expenses() ([]model.Expense, error) {
	v, ok, err := s.Get(KeyExpenses)
	if err != nil || !ok {
		return nil, err
	}
	var recs []expenseRecord
	if err := json.Unmarshal([]byte(v), &recs); err != nil {
		return nil, fmt.Errorf("decoding cached expenses: %w", err)
	}
	out := make([]model.Expense, len(recs))
	for i, r := range recs {
		out[i] = model.Expense(r)
	}
	return out, nil
}

// SaveExpenses replaces the cached expense list.
func (s *Store) SaveExpenses(list []model.Expense) error {
	recs := make([]expenseRecord, len(list))
	for i, e := range list {
		recs[i] = expenseRecord(e)
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}
	return s.Set(KeyExpenses, string(data))
}
