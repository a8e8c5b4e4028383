package domain

import "time"

// User models a registered account. Every user owns exactly one board,
// created alongside the account in the same transaction.
type User struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	APIKey       string    `json:"-"`
	Tier         int       `json:"tier"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// reservedUsernames can never be registered: each would shadow a route or a
// platform subdomain once used as a tenant name.
var reservedUsernames = map[string]struct{}{
	"admin":     {},
	"api":       {},
	"auth":      {},
	"captcha":   {},
	"dashboard": {},
	"mail":      {},
	"metrics":   {},
	"static":    {},
	"www":       {},
}

// UsernameReserved reports whether name is on the reserved list.
func UsernameReserved(name string) bool {
	_, ok := reservedUsernames[name]
	return ok
}
