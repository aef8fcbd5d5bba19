package models

// Identity is the verified caller attached to a request by the auth
// middleware. It is only ever built from a validated session token.
type Identity struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}
