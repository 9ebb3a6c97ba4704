package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"paisa/internal/log"
	"paisa/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.MemoryGateway) {
	t.Helper()
	g := storage.NewMemoryGateway()
	return NewService(g, log.New(log.DefaultConfig())), g
}

func TestSignUpAndSignIn(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	account, err := s.SignUp(ctx, "Asha@Example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", account.Email)
	require.NotEmpty(t, account.ID)

	current := s.Current()
	require.NotNil(t, current)
	require.Equal(t, account.ID, current.ID)

	s.SignOut(ctx)
	require.Nil(t, s.Current())

	again, err := s.SignIn(ctx, "asha@example.com", "secret1")
	require.NoError(t, err)
	require.Equal(t, account.ID, again.ID)
}

func TestSignUpSeedsPreferences(t *testing.T) {
	s, g := newTestService(t)
	ctx := context.Background()

	account, err := s.SignUp(ctx, "a@example.com", "secret1")
	require.NoError(t, err)

	p, err := g.GetPreferences(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.False(t, p.OnboardingCompleted)
	require.Equal(t, "INR", p.Currency)
}

func TestSignUpValidation(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "not-an-email", "secret1")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = s.SignUp(ctx, "a@example.com", "short")
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = s.SignUp(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	_, err = s.SignUp(ctx, "a@example.com", "another1")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignInErrors(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.SignIn(ctx, "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrUnknownAccount)

	_, err = s.SignUp(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	s.SignOut(ctx)

	_, err = s.SignIn(ctx, "a@example.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredential)
	require.Nil(t, s.Current())
}

func TestSignInRateLimit(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	s.SignOut(ctx)

	for i := 0; i < maxAttempts; i++ {
		_, err = s.SignIn(ctx, "a@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredential)
	}

	// Window exhausted; even the right password is refused.
	_, err = s.SignIn(ctx, "a@example.com", "secret1")
	require.ErrorIs(t, err, ErrRateLimited)

	// The limiter is per email.
	_, err = s.SignIn(ctx, "b@example.com", "whatever")
	require.ErrorIs(t, err, ErrUnknownAccount)
}

func TestOnChange(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	var events []*Account
	unsubscribe := s.OnChange(func(a *Account) {
		events = append(events, a)
	})

	// Fires immediately with the signed-out state.
	require.Len(t, events, 1)
	require.Nil(t, events[0])

	account, err := s.SignUp(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, account.ID, events[1].ID)

	s.SignOut(ctx)
	require.Len(t, events, 3)
	require.Nil(t, events[2])

	unsubscribe()
	_, err = s.SignIn(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	require.Len(t, events, 3)
}
