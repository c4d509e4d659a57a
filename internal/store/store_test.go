package store

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/theirongolddev/gastos/internal/model"
)

type StoreTestSuite struct {
	suite.Suite
	st *Store
}

func (s *StoreTestSuite) SetupTest() {
	st, err := OpenMemory()
	require.NoError(s.T(), err, "failed to open in-memory store")
	s.st = st
}

func (s *StoreTestSuite) TearDownTest() {
	if s.st != nil {
		_ = s.st.Close()
	}
}

func (s *StoreTestSuite) TestSessionRoundTrip() {
	sess := model.Session{Token: "tok", UserID: "u1", Email: "a@b.c", PhotoURL: "http://img"}
	require.NoError(s.T(), s.st.SaveSession(sess))

	got, err := s.st.Session()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), sess, got)
	assert.True(s.T(), s.st.IsAuthenticated())
	assert.Equal(s.T(), "tok", s.st.Token())
}

func (s *StoreTestSuite) TestEmptyStoreIsUnauthenticated() {
	assert.False(s.T(), s.st.IsAuthenticated())
	sess, err := s.st.Session()
	require.NoError(s.T(), err)
	assert.False(s.T(), sess.Authenticated())
}

func (s *StoreTestSuite) TestBudgetWrittenUnderBothKeys() {
	require.NoError(s.T(), s.st.SaveBudget(model.Budget{Total: decimal.RequireFromString("500.25")}))

	for _, key := range []string{KeyBudget, KeyUserBudget} {
		v, ok, err := s.st.Get(key)
		require.NoError(s.T(), err)
		assert.True(s.T(), ok, key)
		assert.Equal(s.T(), "500.25", v)
	}

	b, err := s.st.Budget()
	require.NoError(s.T(), err)
	assert.True(s.T(), b.Total.Equal(decimal.RequireFromString("500.25")))
}

func (s *StoreTestSuite) TestBudgetFallsBackToLegacyKey() {
	require.NoError(s.T(), s.st.Set(KeyUserBudget, "80"))
	b, err := s.st.Budget()
	require.NoError(s.T(), err)
	assert.True(s.T(), b.Total.Equal(decimal.NewFromInt(80)))
}

func (s *StoreTestSuite) TestExpensesCache() {
	list := []model.Expense{
		{ID: "e1", Name: "Rent", Amount: decimal.NewFromInt(300), Date: "2024-01-01", CategoryID: "c1", CategoryName: "Home"},
		{ID: "e2", Name: "Tea", Amount: decimal.RequireFromString("2.5"), Date: "2024-01-02"},
	}
	require.NoError(s.T(), s.st.SaveExpenses(list))

	got, err := s.st.Expenses()
	require.NoError(s.T(), err)
	require.Len(s.T(), got, 2)
	assert.Equal(s.T(), "Rent", got[0].Name)
	assert.Equal(s.T(), "Home", got[0].CategoryName)
	assert.True(s.T(), got[1].Amount.Equal(decimal.RequireFromString("2.5")))
}

func (s *StoreTestSuite) TestClearRemovesEveryKey() {
	require.NoError(s.T(), s.st.SaveSession(model.Session{Token: "t", UserID: "u", Email: "e", PhotoURL: "p"}))
	require.NoError(s.T(), s.st.SaveBudget(model.Budget{Total: decimal.NewFromInt(10)}))
	require.NoError(s.T(), s.st.SaveExpenses([]model.Expense{{ID: "x", Amount: decimal.NewFromInt(1)}}))

	keys, err := s.st.Keys()
	require.NoError(s.T(), err)
	assert.ElementsMatch(s.T(), AllKeys, keys)

	require.NoError(s.T(), s.st.Clear())

	keys, err = s.st.Keys()
	require.NoError(s.T(), err)
	assert.Empty(s.T(), keys)
	assert.False(s.T(), s.st.IsAuthenticated())
}

func (s *StoreTestSuite) TestEmptyValueDeletes() {
	require.NoError(s.T(), s.st.Set(KeyUserEmail, "a@b.c"))
	require.NoError(s.T(), s.st.Delete(KeyUserEmail))
	_, ok, err := s.st.Get(KeyUserEmail)
	require.NoError(s.T(), err)
	assert.False(s.T(), ok)
}

func (s *StoreTestSuite) TestConcurrentWriters() {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.st.SaveBudget(model.Budget{Total: decimal.NewFromInt(int64(i + 1))})
			_ = s.st.SavePhoto("p")
		}(i)
	}
	wg.Wait()

	a, _, err := s.st.Get(KeyBudget)
	require.NoError(s.T(), err)
	b, _, err := s.st.Get(KeyUserBudget)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), a, b, "both budget keys written together")
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestOpenFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.SaveSession(model.Session{Token: "persisted"}))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	assert.Equal(t, "persisted", st.Token())
}
