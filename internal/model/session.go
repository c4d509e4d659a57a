// Package model defines the canonical domain types for gastos.
//
// Everything downstream of the API normalization boundary consumes these
// types only; backend payload quirks never leak past internal/api.
package model

// Session is the authenticated-user context. A session is authenticated
// solely by the presence of a token: there is no expiry or refresh.
type Session struct {
	Token    string
	UserID   string
	Email    string
	PhotoURL string
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Profile is the editable user record plus the budget stored alongside it.
type Profile struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	PhotoURL string
	Budget   Budget
}
