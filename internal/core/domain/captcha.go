package domain

import "time"

// Challenge is one outstanding proof-of-work captcha question, bound to the
// client IP it was issued to. Tokens are single-use.
type Challenge struct {
	Token    string    `json:"token"`
	Question string    `json:"question"`
	Answer   int       `json:"-"`
	IssuedAt time.Time `json:"-"`
}

const (
	// ChallengesPerIP bounds how many outstanding challenges one client
	// may hold; issuing more evicts the oldest.
	ChallengesPerIP = 10
	// ChallengeTTL bounds challenge lifetime on top of the count cap.
	ChallengeTTL = 5 * time.Minute
)
