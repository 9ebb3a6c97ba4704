// Package auth implements email/password identity with an observable
// current-user slot. It is the only package that touches password hashes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"paisa/internal/core"
	"paisa/internal/log"
	"paisa/internal/storage"
)

// Coded errors surfaced to callers. Handlers map these onto stable
// error codes so clients can branch on them.
var (
	ErrInvalidCredential = errors.New("auth/invalid-credential")
	ErrUnknownAccount    = errors.New("auth/user-not-found")
	ErrEmailTaken        = errors.New("auth/email-already-in-use")
	ErrWeakPassword      = errors.New("auth/weak-password")
	ErrInvalidEmail      = errors.New("auth/invalid-email")
	ErrRateLimited       = errors.New("auth/too-many-requests")
	ErrNotSignedIn       = errors.New("auth/not-signed-in")
)

const (
	minPasswordLen = 6
	maxAttempts    = 5
	attemptWindow  = 15 * time.Minute
)

// Account is the public identity view. It never carries the hash.
type Account struct {
	ID    string
	Email string
}

// Store is the identity persistence surface. Both storage gateways
// satisfy it.
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (storage.User, error)
	UserByEmail(ctx context.Context, email string) (storage.User, error)
	SetPreferences(ctx context.Context, userID string, p core.Preferences) error
}

// Listener is notified whenever the current account changes. A nil
// account means signed out.
type Listener func(*Account)

// Service owns the current-account slot and the sign-in rate limiter.
type Service struct {
	store  Store
	logger *log.Logger

	mu        sync.Mutex
	current   *Account
	listeners map[int]Listener
	nextID    int
	attempts  map[string]*attemptWindowState
}

type attemptWindowState struct {
	count int
	since time.Time
}

func NewService(store Store, logger *log.Logger) *Service {
	return &Service{
		store:     store,
		logger:    logger.WithComponent(log.ComponentAuth),
		listeners: make(map[int]Listener),
		attempts:  make(map[string]*attemptWindowState),
	}
}

// SignUp registers a new account, seeds default preferences and signs
// the account in.
func (s *Service) SignUp(ctx context.Context, email, password string) (*Account, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, email, string(hash))
	if errors.Is(err, storage.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	if err := s.store.SetPreferences(ctx, u.ID, core.DefaultPreferences()); err != nil {
		s.logger.WarnContext(ctx, "Seeding preferences failed",
			log.FieldUserID, u.ID, log.FieldError, err.Error())
	}

	account := &Account{ID: u.ID, Email: u.Email}
	s.setCurrent(account)
	s.logger.InfoContext(ctx, "Account created",
		log.FieldUserID, u.ID, log.FieldOperation, log.OpSignUp)
	return account, nil
}

// SignIn verifies credentials and publishes the account. Failed attempts
// count against a per-email window; once exhausted the email is refused
// until the window expires, regardless of password.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Account, error) {
	email = normalizeEmail(email)
	if s.limited(email) {
		return nil, ErrRateLimited
	}

	u, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		s.recordFailure(email)
		return nil, ErrUnknownAccount
	}
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.recordFailure(email)
		return nil, ErrInvalidCredential
	}
	s.clearFailures(email)

	account := &Account{ID: u.ID, Email: u.Email}
	s.setCurrent(account)
	s.logger.InfoContext(ctx, "Signed in",
		log.FieldUserID, u.ID, log.FieldOperation, log.OpSignIn)
	return account, nil
}

// SignOut clears the current account and notifies listeners.
func (s *Service) SignOut(ctx context.Context) {
	s.setCurrent(nil)
	s.logger.InfoContext(ctx, "Signed out", log.FieldOperation, log.OpSignOut)
}

// Current returns the signed-in account, or nil.
func (s *Service) Current() *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// OnChange registers a listener and returns its unsubscribe function.
// The listener fires immediately with the current state.
func (s *Service) OnChange(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.current
	s.mu.Unlock()

	fn(copyAccount(current))
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) setCurrent(a *Account) {
	s.mu.Lock()
	s.current = a
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(copyAccount(a))
	}
}

func (s *Service) limited(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.attempts[email]
	if !ok {
		return false
	}
	if time.Since(st.since) > attemptWindow {
		delete(s.attempts, email)
		return false
	}
	return st.count >= maxAttempts
}

func (s *Service) recordFailure(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.attempts[email]
	if !ok || time.Since(st.since) > attemptWindow {
		s.attempts[email] = &attemptWindowState{count: 1, since: time.Now()}
		return
	}
	st.count++
}

func (s *Service) clearFailures(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, email)
}

func copyAccount(a *Account) *Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
