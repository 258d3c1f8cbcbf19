// Package accounts manages the club's login accounts: self-service creation,
// removal and password authentication against an AccountStore.
package accounts

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"clubfin/internal/core"
	applog "clubfin/internal/log"
	ports "clubfin/internal/sheets"
)

// MinPasswordLength is the shortest password accepted at creation.
const MinPasswordLength = 6

// NewAccount is the input of Service.Create. Password is the clear text.
type NewAccount struct {
	FirstName   string
	LastName    string
	Email       string
	Username    string
	Password    string
	Permissions core.Permission
}

type Service struct {
	store  ports.AccountStore
	logger *applog.Logger
	cost   int
	title  cases.Caser
}

type Option func(*Service)

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func NewService(store ports.AccountStore, logger *applog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = applog.Discard()
	}
	s := &Service{
		store:  store,
		logger: logger.WithComponent(applog.ComponentAccounts),
		cost:   bcrypt.DefaultCost,
		title:  cases.Title(language.English),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func ValidateName(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return &ValidationError{Field: field, Reason: "cannot be empty"}
	}
	return nil
}

func ValidateEmail(v string) error {
	if strings.TrimSpace(v) == "" || !strings.Contains(v, "@") {
		return &ValidationError{Field: "email", Reason: "must contain @"}
	}
	return nil
}

func ValidateUsername(v string) error {
	if strings.TrimSpace(v) == "" {
		return &ValidationError{Field: "username", Reason: "cannot be empty"}
	}
	return nil
}

func ValidatePassword(v string) error {
	if len(v) < MinPasswordLength {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}
	return nil
}

// EmailTaken reports whether an account already uses email.
func (s *Service) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, ok, err := s.find(ctx, func(a core.Account) bool { return a.Email == email })
	return ok, err
}

// UsernameTaken reports whether an account already uses username.
func (s *Service) UsernameTaken(ctx context.Context, username string) (bool, error) {
	_, ok, err := s.find(ctx, func(a core.Account) bool { return a.Username == username })
	return ok, err
}

// Create validates n, rejects duplicates and stores the account with a
// bcrypt-hashed password. Only Member and Coach accounts can be created.
func (s *Service) Create(ctx context.Context, n NewAccount) (core.Account, error) {
	for _, err := range []error{
		ValidateName("first name", n.FirstName),
		ValidateName("last name", n.LastName),
		ValidateEmail(n.Email),
		ValidateUsername(n.Username),
		ValidatePassword(n.Password),
	} {
		if err != nil {
			return core.Account{}, err
		}
	}
	if n.Permissions != core.PermissionMember && n.Permissions != core.PermissionCoach {
		return core.Account{}, &ValidationError{Field: "permissions", Reason: "must be Member or Coach"}
	}

	existing, err := s.store.ListAccounts(ctx)
	if err != nil {
		return core.Account{}, fmt.Errorf("list accounts: %w", err)
	}
	for _, a := range existing {
		switch {
		case a.Email == n.Email:
			return core.Account{}, &DuplicateAccountError{Field: "Email", Value: n.Email}
		case a.Username == n.Username:
			return core.Account{}, &DuplicateAccountError{Field: "Username", Value: n.Username}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(n.Password), s.cost)
	if err != nil {
		return core.Account{}, fmt.Errorf("hash password: %w", err)
	}
	acc := core.Account{
		FirstName:   s.title.String(strings.TrimSpace(n.FirstName)),
		LastName:    s.title.String(strings.TrimSpace(n.LastName)),
		Email:       n.Email,
		Username:    n.Username,
		Password:    string(hash),
		Permissions: n.Permissions,
	}
	if err := s.store.AddAccount(ctx, acc); err != nil {
		return core.Account{}, fmt.Errorf("add account: %w", err)
	}
	s.logger.WithFields(applog.NewFields().WithAccount(acc).WithOperation(applog.OpCreate)).
		InfoContext(ctx, "Account created")
	return acc, nil
}

// Remove deletes the account with the given username.
func (s *Service) Remove(ctx context.Context, username string) error {
	ok, err := s.store.RemoveAccount(ctx, username)
	if err != nil {
		return fmt.Errorf("remove account: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, username)
	}
	s.logger.InfoContext(ctx, "Account removed", applog.FieldUsername, username)
	return nil
}

// Authenticate returns the account matching username and password.
// Accounts written before hashing was introduced hold the clear text; they
// still authenticate and a warning is logged for each such login.
func (s *Service) Authenticate(ctx context.Context, username, password string) (core.Account, error) {
	acc, ok, err := s.find(ctx, func(a core.Account) bool { return a.Username == username })
	if err != nil {
		return core.Account{}, err
	}
	if !ok {
		s.logger.InfoContext(ctx, "Login failed", applog.FieldUsername, username, applog.FieldReason, "unknown username")
		return core.Account{}, ErrInvalidCredentials
	}

	if isBcryptHash(acc.Password) {
		if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)); err != nil {
			if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				s.logger.WarnContext(ctx, "Stored password hash is unreadable", applog.FieldUsername, username, applog.FieldError, err)
			}
			s.logger.InfoContext(ctx, "Login failed", applog.FieldUsername, username, applog.FieldReason, "wrong password")
			return core.Account{}, ErrInvalidCredentials
		}
	} else {
		if subtle.ConstantTimeCompare([]byte(acc.Password), []byte(password)) != 1 {
			s.logger.InfoContext(ctx, "Login failed", applog.FieldUsername, username, applog.FieldReason, "wrong password")
			return core.Account{}, ErrInvalidCredentials
		}
		s.logger.WarnContext(ctx, "Account password is stored in plain text; recreate the account to hash it",
			applog.FieldUsername, username)
	}

	s.logger.WithFields(applog.NewFields().WithAccount(acc).WithOperation(applog.OpLogin)).
		InfoContext(ctx, "Login succeeded")
	return acc, nil
}

func (s *Service) find(ctx context.Context, match func(core.Account) bool) (core.Account, bool, error) {
	list, err := s.store.ListAccounts(ctx)
	if err != nil {
		return core.Account{}, false, fmt.Errorf("list accounts: %w", err)
	}
	for _, a := range list {
		if match(a) {
			return a, true, nil
		}
	}
	return core.Account{}, false, nil
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
