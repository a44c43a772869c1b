package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/talup-bot/internal/domain/entities"
	"github.com/aliskhannn/talup-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
)

var (
	ErrNotAuthorized    = errors.New("not authorized")
	ErrSessionExpired   = errors.New("session expired")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// AuthService binds TalUp sessions to Telegram users.
type AuthService struct {
	api     AuthAPI
	users   UserRepository
	tr      Transactor
	usersIn UserRepositoryFactory
	now     func() time.Time
	logger  *zap.Logger
}

// NewAuthService creates a new AuthService. usersIn builds the repository used
// inside login transactions.
func NewAuthService(
	api AuthAPI,
	users UserRepository,
	tr Transactor,
	usersIn UserRepositoryFactory,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		api:     api,
		users:   users,
		tr:      tr,
		usersIn: usersIn,
		now:     time.Now,
		logger:  logger,
	}
}

// Login authenticates against the backend and stores the token.
func (s *AuthService) Login(ctx context.Context, userID, chatID int64, email, password string) (talupapi.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return talupapi.Session{}, ErrInvalidArguments
	}
	if err := ValidateEmail(email); err != nil {
		return talupapi.Session{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return talupapi.Session{}, err
	}

	session, err := s.api.Login(ctx, email, password)
	if err != nil {
		return talupapi.Session{}, fmt.Errorf("login: %w", err)
	}

	if err := s.store(ctx, userID, chatID, session.Token); err != nil {
		return talupapi.Session{}, err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", userID))
	return session, nil
}

// Register validates the form, creates a backend account and stores its token.
// The name defaults to the username.
func (s *AuthService) Register(ctx context.Context, userID, chatID int64, reg talupapi.Registration) (talupapi.Session, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Username = strings.TrimSpace(reg.Username)
	if reg.Email == "" || reg.Password == "" || reg.Username == "" {
		return talupapi.Session{}, ErrInvalidArguments
	}
	if err := ValidateRegistration(reg); err != nil {
		return talupapi.Session{}, err
	}
	if reg.Name == "" {
		reg.Name = reg.Username
	} else {
		reg.Name = FormatName(reg.Name)
	}

	session, err := s.api.Register(ctx, reg)
	if err != nil {
		return talupapi.Session{}, fmt.Errorf("register: %w", err)
	}

	if err := s.store(ctx, userID, chatID, session.Token); err != nil {
		return talupapi.Session{}, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", userID))
	return session, nil
}

func (s *AuthService) store(ctx context.Context, userID, chatID int64, token string) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		users := s.usersIn(tx)

		user := entities.NewUser(userID, chatID, token)
		user.UpdatedAt = s.now()

		existing, err := users.GetByID(ctx, userID)
		switch {
		case err == nil:
			user.CreatedAt = existing.CreatedAt
		case errors.Is(err, repository.ErrUserNotFound):
			user.CreatedAt = user.UpdatedAt
		default:
			return err
		}

		if _, err := users.Save(ctx, user); err != nil {
			return err
		}
		return nil
	})
}

// Logout forgets the stored token.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.users.DeleteToken(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user logged out", zap.Int64("user_id", userID))
	return nil
}

// Token returns the stored token. Expired JWTs are dropped and reported as ErrSessionExpired.
func (s *AuthService) Token(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrNotAuthorized
		}
		return "", err
	}
	if !user.HasSession() {
		return "", ErrNotAuthorized
	}

	if s.expired(user.Token) {
		if err := s.users.DeleteToken(ctx, userID); err != nil {
			s.logger.Warn("failed to drop expired token", zap.Int64("user_id", userID), zap.Error(err))
		}
		return "", ErrSessionExpired
	}

	return user.Token, nil
}

// expired inspects the exp claim without verifying the signature. Tokens that are
// not JWTs or carry no exp are treated as valid.
func (s *AuthService) expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		s.logger.Debug("token is not a parsable jwt", zap.Error(err))
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.now())
}
