package domain

import "errors"

// Sentinel errors shared across services and mapped to HTTP status codes in
// the API error handler. Wrap with fmt.Errorf("%w: detail", Err…) to attach
// context without breaking errors.Is checks.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidToken       = errors.New("invalid token")
	ErrCapacityReached    = errors.New("registration capacity reached")

	ErrBoardNotFound = errors.New("board not found")
	ErrEntryNotFound = errors.New("entry not found")
	ErrForbidden     = errors.New("access forbidden")

	ErrCaptchaFailed = errors.New("captcha failed")
	ErrMissingField  = errors.New("missing field")
	ErrFieldTooLong  = errors.New("field too long")
	ErrInvalidImage  = errors.New("invalid image")
	ErrStylesTooBig  = errors.New("custom styles exceed size cap")
)
