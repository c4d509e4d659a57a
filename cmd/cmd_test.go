package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
)

func TestFindCategoryPrefersIDThenName(t *testing.T) {
	cats := []model.Category{{ID: "c1", Name: "Home"}, {ID: "home", Name: "Food"}}

	c, err := findCategory(cats, "HOME")
	require.NoError(t, err)
	assert.Equal(t, "Food", c.Name, "id match wins over name match")

	c, err = findCategory(cats, " c1 ")
	require.NoError(t, err)
	assert.Equal(t, "Home", c.Name)

	_, err = findCategory(cats, "travel")
	assert.True(t, apperr.IsValidation(err))
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"watch", "--detach", "--addr", ":9000", "--detach=true"})
	assert.Equal(t, []string{"watch", "--addr", ":9000"}, got)
}

func TestPIDFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.pid")
	require.NoError(t, writePID(path, 4242))

	pid, err := readPID(path)
	require.NoError(t, err)
	assert.Equal(t, 4242, pid)

	require.NoError(t, os.WriteFile(path, []byte("nope\n"), 0o600))
	_, err = readPID(path)
	assert.Error(t, err)
}

func TestEnsureWatchNotRunningClearsStalePID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.pid")
	assert.NoError(t, ensureWatchNotRunning(path), "missing pid file is fine")

	require.NoError(t, writePID(path, os.Getpid()))
	assert.Error(t, ensureWatchNotRunning(path), "this process is alive")
}

func TestSum(t *testing.T) {
	got := sum([]decimal.Decimal{decimal.RequireFromString("1.10"), decimal.RequireFromString("2.20")})
	assert.True(t, got.Equal(decimal.RequireFromString("3.30")))
}
