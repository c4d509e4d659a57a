package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gastos/internal/apperr"
	"github.com/theirongolddev/gastos/internal/model"
)

// LoginResult is what a successful login yields.
type LoginResult struct {
	Session model.Session
}

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contrasena"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Usuario json.RawMessage `json:"usuario"`
	User    json.RawMessage `json:"user"`
}

// Login exchanges credentials for a session token.
//
// Rejected credentials come back as *apperr.AuthError; anything else
// (unreachable server, 5xx) is an *apperr.NetworkError.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		switch statusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return LoginResult{}, &apperr.AuthError{Reason: "bad credentials", Status: statusOf(err)}
		}
		return LoginResult{}, err
	}

	var raw loginResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return LoginResult{}, &apperr.NetworkError{Op: "POST /auth/login", Err: fmt.Errorf("parsing response: %w", err)}
	}
	if raw.Token == "" {
		return LoginResult{}, &apperr.NetworkError{Op: "POST /auth/login", Message: "login response carried no token"}
	}

	sess := model.Session{Token: raw.Token, Email: email}
	userRaw := raw.Usuario
	if len(userRaw) == 0 {
		userRaw = raw.User
	}
	if p, ok := NormalizeProfile(userRaw); ok {
		sess.UserID = p.ID
		if p.Email != "" {
			sess.Email = p.Email
		}
		sess.PhotoURL = p.PhotoURL
	}
	if sess.UserID == "" {
		sess.UserID = UserIDFromToken(raw.Token)
	}
	return LoginResult{Session: sess}, nil
}

// UserIDFromToken reads the user id claim from a JWT without verifying it.
// The server is the authority on validity; the client only needs the id to
// address /usuarios/:id when the login payload omits it.
func UserIDFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	for _, k := range []string{"sub", "id", "userId", "user_id"} {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return decimal.NewFromFloat(v).String()
		}
	}
	return ""
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	InitialBudget decimal.Decimal
}

type registerRequest struct {
	Name     string      `json:"nombre"`
	Email    string      `json:"correo"`
	Password string      `json:"contrasena"`
	Budget   json.Number `json:"presupuesto"`
}

// Register creates a user. The backend's validation message, if any, is
// carried on the returned *apperr.NetworkError.
func (c *Client) Register(ctx context.Context, in RegisterInput) (model.Profile, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/auth/register", registerRequest{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Budget:   json.Number(in.InitialBudget.String()),
	})
	if err != nil {
		return model.Profile{}, err
	}

	p, ok := NormalizeProfile(body)
	if !ok {
		p = model.Profile{}
	}
	if p.Name == "" {
		p.Name = in.Name
	}
	if p.Email == "" {
		p.Email = in.Email
	}
	if !p.Budget.IsSet() {
		p.Budget = model.Budget{Total: in.InitialBudget}
	}
	return p, nil
}
