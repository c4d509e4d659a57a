package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key          TEXT PRIMARY KEY,
    value        TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);
`

// Persisted keys. The names match what the web client kept in localStorage
// so an exported state file reads the same in both.
const (
	KeyAuthToken  = "authToken"
	KeyUserID     = "userId"
	KeyUserEmail  = "userEmail"
	KeyProfilePic = "profilePic"
	KeyUserBudget = "userBudget"
	KeyBudget     = "budget"
	KeyExpenses   = "expenses"
)

// AllKeys lists every key the client writes.
var AllKeys = []string{
	KeyAuthToken, KeyUserID, KeyUserEmail, KeyProfilePic,
	KeyUserBudget, KeyBudget, KeyExpenses,
}
