package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/gastos/internal/apperr"
)

func newTestClient(t *testing.T, token string, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", StaticToken(token))
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotReqID string
	c := newTestClient(t, "tok-123", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestNoTokenNoAuthorizationHeader(t *testing.T) {
	var hadAuth bool
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.ListExpenses(context.Background())
	require.NoError(t, err)
	assert.False(t, hadAuth)
}

func TestLoginSuccess(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["correo"])
		assert.Equal(t, "secret", body["contrasena"])
		_, _ = w.Write([]byte(`{"token":"abc","usuario":{"id":"u-1","correo":"ana@example.com","imagen":"http://img/1.png"}}`))
	})

	res, err := c.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Session.Token)
	assert.Equal(t, "u-1", res.Session.UserID)
	assert.Equal(t, "http://img/1.png", res.Session.PhotoURL)
}

func TestLoginUserIDFromTokenClaims(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-42"})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	c := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": signed})
	})

	res, err := c.Login(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u-42", res.Session.UserID)
	assert.Equal(t, "a@b.c", res.Session.Email)
}

func TestLoginBadCredentialsVersusServerError(t *testing.T) {
	bad := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := bad.Login(context.Background(), "a", "b")
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))
	assert.Equal(t, "bad credentials", apperr.UserMessage(err))

	down := newTestClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err = down.Login(context.Background(), "a", "b")
	require.Error(t, err)
	assert.True(t, apperr.IsNetwork(err))
	assert.False(t, apperr.IsAuth(err))
}

func TestRegisterSurfacesBackendMessages(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(500), body["presupuesto"])
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":["correo must be an email","nombre should not be empty"]}`))
	})

	_, err := c.Register(context.Background(), RegisterInput{
		Name: "", Email: "x", Password: "p", InitialBudget: decimal.NewFromInt(500),
	})
	require.Error(t, err)
	assert.Equal(t, "correo must be an email, nombre should not be empty", apperr.UserMessage(err))
}

func TestExpiredTokenIsAuthError(t *testing.T) {
	c := newTestClient(t, "stale", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	_, err := c.ListExpenses(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsAuth(err))
}

func TestCreateExpensePayload(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/gastos", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"nombreGasto":"Rent","monto":300,"fechaGasto":"2024-01-01","descripcion":"","categoriaID":"c1"}`, string(raw))
		_, _ = w.Write([]byte(`{"id":"e1","nombreGasto":"Rent","monto":300,"fechaGasto":"2024-01-01T00:00:00.000Z","categoriaID":"c1"}`))
	})

	e, err := c.CreateExpense(context.Background(), ExpenseInput{
		Name: "Rent", Amount: decimal.NewFromInt(300), Date: "2024-01-01", CategoryID: "c1",
	})
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, "2024-01-01", e.Date)
}

func TestUpdateAndDeleteExpenseRoutes(t *testing.T) {
	var seen []string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	e, err := c.UpdateExpense(context.Background(), "e1", ExpenseInput{Name: "Rent", Amount: decimal.NewFromInt(400), Date: "2024-01-01", CategoryID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID, "empty response falls back to submitted input")
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(400)))

	require.NoError(t, c.DeleteExpense(context.Background(), "e1"))
	assert.Equal(t, []string{"PATCH /api/gastos/e1", "DELETE /api/gastos/e1"}, seen)
}

func TestUpdateBudgetAndProfile(t *testing.T) {
	var paths []string
	var bodies []string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(raw))
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, c.UpdateBudget(context.Background(), "u1", decimal.RequireFromString("750.50")))
	require.NoError(t, c.UpdateUser(context.Background(), "u1", "Ana", "ana@x.io", ""))

	assert.Equal(t, []string{"PATCH /api/usuarios/u1/presupuesto", "PATCH /api/usuarios/u1"}, paths)
	assert.JSONEq(t, `{"presupuesto":750.5}`, bodies[0])
	assert.JSONEq(t, `{"nombre":"Ana","correo":"ana@x.io"}`, bodies[1])
}

func TestUploadPhotoFallsBackToLegacyRoute(t *testing.T) {
	var tried []string
	c := newTestClient(t, "t", func(w http.ResponseWriter, r *http.Request) {
		tried = append(tried, r.URL.Path)
		if strings.HasSuffix(r.URL.Path, "/foto") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "me.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(data))
		_, _ = w.Write([]byte(`{"foto":"http://cdn/me.png"}`))
	})

	u, err := c.UploadPhoto(context.Background(), "u1", "/tmp/me.png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/me.png", u)
	assert.Equal(t, []string{"/api/usuarios/u1/foto", "/api/usuarios/photo"}, tried)
}

func TestGetUserNormalizesBudget(t *testing.T) {
	c := newTestClient(t, "t", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"_id":"u1","nombre":"Ana","correo":"ana@x.io","telefono":"555","presupuesto":"500"}`))
	})

	p, err := c.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, "555", p.Phone)
	assert.True(t, p.Budget.Total.Equal(decimal.NewFromInt(500)))
}

func TestCanceledContextIsNotRetried(t *testing.T) {
	calls := 0
	c := newTestClient(t, "t", func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListExpenses(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}
