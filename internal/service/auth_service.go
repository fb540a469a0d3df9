package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/nurpe/sitetrack/internal/model"
	"github.com/nurpe/sitetrack/internal/repository"
)

const (
	minPasswordLength = 8
	// bcrypt rejects input longer than 72 bytes.
	maxPasswordLength = 72
)

var validate = validator.New()

type TokenIssuer interface {
	Issue(user model.User) (string, time.Time, error)
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type Session struct {
	AccessToken string     `json:"access_token"`
	ExpiresAt   time.Time  `json:"expires_at"`
	User        model.User `json:"user"`
}

type AuthService struct {
	users  *repository.UserRepository
	issuer TokenIssuer
	cost   int
}

func NewAuthService(users *repository.UserRepository, issuer TokenIssuer) *AuthService {
	return &AuthService{users: users, issuer: issuer, cost: bcrypt.DefaultCost}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(in.Password) > maxPasswordLength {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordLength)
	}
	name := strings.TrimSpace(in.Name)
	if len(name) > 100 {
		return nil, fmt.Errorf("%w: name must be at most 100 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{Email: email, Name: name, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, user); err != nil {
		if err = translate(err); errors.Is(err, ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(*user)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: token, ExpiresAt: expiresAt, User: *user}, nil
}

// Me returns the account behind principal. A token whose user has since been
// removed is treated as unauthenticated.
func (s *AuthService) Me(ctx context.Context, principal model.Principal) (*model.User, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if err := validate.Var(raw, "required,email"); err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return strings.ToLower(raw), nil
}
