package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/poyobook/poyobook/internal/core/domain"
	"github.com/poyobook/poyobook/internal/core/ports"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]{1,20}$`)

const minPasswordLen = 8

// AuthService implements registration, login, session identity and password
// recovery. Registration creates the account and its tenant board in a
// single repository transaction.
type AuthService struct {
	users     ports.UserRepository
	codec     *TokenCodec
	mailQueue ports.MailQueue
	maxUsers  int
	cleanHost string
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *TokenCodec, mailQueue ports.MailQueue, maxUsers int, cleanHost string, logger zerolog.Logger) *AuthService {
	if maxUsers <= 0 {
		maxUsers = 100
	}
	return &AuthService{
		users:     users,
		codec:     codec,
		mailQueue: mailQueue,
		maxUsers:  maxUsers,
		cleanHost: strings.ToLower(cleanHost),
		logger:    logger,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	if !usernamePattern.MatchString(in.Username) {
		return "", nil, fmt.Errorf("%w: username", domain.ErrInvalidInput)
	}
	if domain.UsernameReserved(strings.ToLower(in.Username)) {
		return "", nil, fmt.Errorf("%w: username is reserved", domain.ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return "", nil, fmt.Errorf("%w: password too short", domain.ErrInvalidInput)
	}
	boardType := in.BoardType
	if boardType == "" {
		boardType = domain.BoardDrawbox
	}
	if !boardType.Valid() {
		return "", nil, fmt.Errorf("%w: board type", domain.ErrInvalidInput)
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return "", nil, err
	}
	if count >= int64(s.maxUsers) {
		return "", nil, domain.ErrCapacityReached
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		CreatedAt:    now,
	}
	name := strings.ToLower(in.Username)
	board := &domain.Board{
		Type:             boardType,
		Name:             name,
		Domain:           name + "." + s.cleanHost,
		Tier:             1,
		BrushColor:       domain.DefaultBrushColor,
		BackgroundColor:  domain.DefaultBackgroundColor,
		ShowCaptcha:      true,
		ShowNames:        true,
		ShowDescriptions: true,
		CreatedAt:        now,
		LastUpdated:      now,
	}

	if err := s.users.CreateWithBoard(ctx, user, board); err != nil {
		return "", nil, err
	}

	token, err := s.codec.IssueSession(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("board_domain", board.Domain).Msg("user registered")
	return token, user, nil
}

// Login accepts a username or an email in the single login field, matching
// on the presence of "@".
func (s *AuthService) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	if login == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	var (
		user *domain.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.users.FindByEmail(ctx, strings.ToLower(login))
	} else {
		user, err = s.users.FindByUsername(ctx, login)
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.IssueSession(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Identify verifies a session token and confirms the referenced user still
// exists. A correctly signed token for a deleted account is rejected, so a
// session can never outlive its user.
func (s *AuthService) Identify(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.codec.VerifySession(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) StartRecovery(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return err
	}

	token, err := s.codec.IssueRecovery(user.Email)
	if err != nil {
		return err
	}

	s.mailQueue.Enqueue(ports.RecoveryMailJob{Email: user.Email, Token: token})
	s.logger.Info().Str("email", user.Email).Msg("recovery mail queued")
	return nil
}

func (s *AuthService) VerifyRecovery(ctx context.Context, token string) (string, error) {
	return s.codec.VerifyRecovery(token)
}

func (s *AuthService) CompleteRecovery(ctx context.Context, token, newPassword string) error {
	email, err := s.codec.VerifyRecovery(token)
	if err != nil {
		return err
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password too short", domain.ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	s.logger.Info().Uint("user_id", user.ID).Msg("password recovered")
	return nil
}
