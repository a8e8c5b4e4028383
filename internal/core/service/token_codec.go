package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/poyobook/poyobook/internal/core/domain"
)

const recoveryIssuer = "poyobook-recovery"

// recoveryTokenTTL bounds how long a password-recovery link stays valid.
const recoveryTokenTTL = time.Hour

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"uid"`
}

type recoveryClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenCodec signs and verifies session and recovery tokens with a shared
// HS256 secret. Verification fails closed: a bad signature, a malformed
// token or an expired recovery token never yields a partial identity.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// IssueSession signs an ordinary session token. Sessions carry no expiry;
// they die when the signing secret changes or the user is deleted.
func (c *TokenCodec) IssueSession(userID uint) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{UserID: userID})
	return t.SignedString(c.secret)
}

// VerifySession returns the user id a session token was issued for.
func (c *TokenCodec) VerifySession(token string) (uint, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.UserID == 0 {
		return 0, domain.ErrInvalidToken
	}
	return claims.UserID, nil
}

// IssueRecovery signs a password-recovery token carrying the account email,
// a one-hour expiry and the recovery issuer claim.
func (c *TokenCodec) IssueRecovery(email string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, recoveryClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    recoveryIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(recoveryTokenTTL)),
		},
		Email: email,
	})
	return t.SignedString(c.secret)
}

// VerifyRecovery returns the email a recovery token was issued for. Expired
// tokens, wrong issuers and session tokens are all rejected.
func (c *TokenCodec) VerifyRecovery(token string) (string, error) {
	claims := &recoveryClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(recoveryIssuer),
		jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid || claims.Email == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Email, nil
}

func (c *TokenCodec) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, errors.New("unexpected signing method")
	}
	return c.secret, nil
}
