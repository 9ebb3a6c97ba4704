package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"paisa/internal/auth"
	"paisa/internal/config"
	"paisa/internal/log"
	"paisa/internal/services"
	"paisa/internal/storage"
)

func newTestServer(t *testing.T, authRateLimit int) *Server {
	t.Helper()
	gw := storage.NewMemoryGateway()
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	cfg := &config.Config{
		Port:           "0",
		AuthRateLimit:  authRateLimit,
		AuthRateWindow: time.Minute,
	}
	s := NewServer(cfg, gw,
		auth.NewService(gw, logger),
		services.NewTransactionService(nil, logger),
		services.NewOnboarding(logger),
		services.NewReporter(nil, 16, time.Minute),
		logger)
	t.Cleanup(func() { s.limiter.stop() })
	return s
}

func doRequest(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func signUp(t *testing.T, s *Server, email string) string {
	t.Helper()
	rec := doRequest(t, s, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[authResponse](t, rec).Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, 100)
	rec := doRequest(t, s, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeBody[map[string]string](t, rec)["status"])
}

func TestSignUpAndMe(t *testing.T) {
	s := newTestServer(t, 100)
	token := signUp(t, s, "Ravi@Example.com")

	rec := doRequest(t, s, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[struct {
		User                accountJSON `json:"user"`
		OnboardingCompleted bool        `json:"onboardingCompleted"`
	}](t, rec)
	require.Equal(t, "ravi@example.com", me.User.Email)
	require.False(t, me.OnboardingCompleted)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	s := newTestServer(t, 100)
	signUp(t, s, "dup@example.com")

	rec := doRequest(t, s, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "dup@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignInFailures(t *testing.T) {
	s := newTestServer(t, 100)
	signUp(t, s, "user@example.com")

	rec := doRequest(t, s, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "user@example.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/auth/signin", "", map[string]string{
		"email": "nobody@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequiresBearerToken(t *testing.T) {
	s := newTestServer(t, 100)

	rec := doRequest(t, s, http.MethodGet, "/api/wallets", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/wallets", "bogus-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignOutInvalidatesToken(t *testing.T) {
	s := newTestServer(t, 100)
	token := signUp(t, s, "bye@example.com")

	rec := doRequest(t, s, http.MethodPost, "/api/auth/signout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/wallets", token, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOnboardingFlow(t *testing.T) {
	s := newTestServer(t, 100)
	token := signUp(t, s, "fresh@example.com")

	rec := doRequest(t, s, http.MethodPost, "/api/onboarding", token, map[string]string{
		"bankBalance": "5000", "cashBalance": "250.50",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	prefs := decodeBody[preferencesJSON](t, rec)
	require.True(t, prefs.OnboardingCompleted)

	rec = doRequest(t, s, http.MethodGet, "/api/wallets", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	wallets := decodeBody[[]walletJSON](t, rec)
	require.Len(t, wallets, 2)

	byName := map[string]walletJSON{}
	for _, w := range wallets {
		byName[w.Name] = w
	}
	require.Equal(t, int64(500000), byName["My Bank/UPI"].BalanceCents)
	require.Equal(t, int64(25050), byName["My Cash"].BalanceCents)

	rec = doRequest(t, s, http.MethodGet, "/api/home", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	home := decodeBody[homeJSON](t, rec)
	require.Equal(t, int64(525050), home.TotalBalanceCents)
	require.Equal(t, "INR", home.Currency)

	// A second onboarding call is a no-op.
	rec = doRequest(t, s, http.MethodPost, "/api/onboarding", token, map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, s, http.MethodGet, "/api/wallets", token, nil)
	require.Len(t, decodeBody[[]walletJSON](t, rec), 2)
}

func TestTransactionLifecycle(t *testing.T) {
	s := newTestServer(t, 100)
	token := signUp(t, s, "spender@example.com")

	rec := doRequest(t, s, http.MethodPost, "/api/wallets", token, map[string]any{
		"name": "Checking", "kind": "PERSONAL",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	wallet := decodeBody[walletJSON](t, rec)

	rec = doRequest(t, s, http.MethodPost, "/api/categories", token, map[string]any{
		"name": "Food", "kind": "EXPENSE", "color": "#E57373",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	category := decodeBody[categoryJSON](t, rec)

	rec = doRequest(t, s, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount": "125.50", "kind": "EXPENSE",
		"walletId": wallet.ID, "categoryId": category.ID, "note": "lunch",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[transactionJSON](t, rec)
	require.Equal(t, int64(12550), created.AmountCents)

	rec = doRequest(t, s, http.MethodGet, "/api/transactions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decodeBody[[]transactionJSON](t, rec)
	require.Len(t, rows, 1)
	require.Equal(t, "Checking", rows[0].WalletName)
	require.Equal(t, "Food", rows[0].CategoryName)

	// A range that predates the transaction returns nothing.
	path := fmt.Sprintf("/api/transactions?from=0&to=%d", created.Date-1)
	rec = doRequest(t, s, http.MethodGet, path, token, nil)
	require.Empty(t, decodeBody[[]transactionJSON](t, rec))

	rec = doRequest(t, s, http.MethodPatch, "/api/transactions/"+created.ID, token, map[string]any{
		"amount": "99",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/wallets", token, nil)
	wallets := decodeBody[[]walletJSON](t, rec)
	require.Equal(t, int64(-9900), wallets[0].BalanceCents)

	rec = doRequest(t, s, http.MethodDelete, "/api/transactions/"+created.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/transactions", token, nil)
	require.Empty(t, decodeBody[[]transactionJSON](t, rec))
}

func TestTransactionValidation(t *testing.T) {
	s := newTestServer(t, 100)
	token := signUp(t, s, "strict@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"bad amount", map[string]any{"amount": "-5", "kind": "EXPENSE", "walletId": "w", "categoryId": "c"}},
		{"transfer with category", map[string]any{"amount": "10", "kind": "TRANSFER", "walletId": "w", "toWalletId": "w2", "categoryId": "c"}},
		{"transfer to itself", map[string]any{"amount": "10", "kind": "TRANSFER", "walletId": "w", "toWalletId": "w"}},
		{"expense without category", map[string]any{"amount": "10", "kind": "EXPENSE", "walletId": "w"}},
		{"unknown kind", map[string]any{"amount": "10", "kind": "LOAN", "walletId": "w"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/transactions", token, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestPreferences(t *testing.T) {
	s := newTestServer(t, 100)
	token := signUp(t, s, "prefs@example.com")

	rec := doRequest(t, s, http.MethodPatch, "/api/preferences", token, map[string]any{
		"currency": "CHF",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPatch, "/api/preferences", token, map[string]any{
		"currency": "EUR", "theme": "LIGHT",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	prefs := decodeBody[preferencesJSON](t, rec)
	require.Equal(t, "EUR", prefs.Currency)
	require.Equal(t, "LIGHT", prefs.Theme)
	require.False(t, prefs.DarkMode)
}

func TestReset(t *testing.T) {
	s := newTestServer(t, 100)
	token := signUp(t, s, "again@example.com")

	rec := doRequest(t, s, http.MethodPost, "/api/onboarding", token, map[string]string{"bankBalance": "100"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/reset", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/wallets", token, nil)
	require.Empty(t, decodeBody[[]walletJSON](t, rec))

	rec = doRequest(t, s, http.MethodGet, "/api/auth/me", token, nil)
	me := decodeBody[struct {
		OnboardingCompleted bool `json:"onboardingCompleted"`
	}](t, rec)
	require.False(t, me.OnboardingCompleted)
}

func TestAuthRateLimit(t *testing.T) {
	s := newTestServer(t, 2)

	body := map[string]string{"email": "limited@example.com", "password": "wrong"}
	for i := 0; i < 2; i++ {
		rec := doRequest(t, s, http.MethodPost, "/api/auth/signin", "", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := doRequest(t, s, http.MethodPost, "/api/auth/signin", "", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestHomeCacheInvalidatedByMutation(t *testing.T) {
	s := newTestServer(t, 100)
	token := signUp(t, s, "cache@example.com")

	rec := doRequest(t, s, http.MethodPost, "/api/onboarding", token, map[string]string{"bankBalance": "1000"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/home", token, nil)
	require.Equal(t, int64(100000), decodeBody[homeJSON](t, rec).TotalBalanceCents)

	rec = doRequest(t, s, http.MethodGet, "/api/wallets", token, nil)
	wallets := decodeBody[[]walletJSON](t, rec)
	var bank walletJSON
	for _, w := range wallets {
		if w.Name == "My Bank/UPI" {
			bank = w
		}
	}

	rec = doRequest(t, s, http.MethodGet, "/api/categories", token, nil)
	cats := decodeBody[[]categoryJSON](t, rec)
	var food categoryJSON
	for _, c := range cats {
		if c.Kind == "EXPENSE" {
			food = c
			break
		}
	}
	require.NotEmpty(t, food.ID)

	rec = doRequest(t, s, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount": "200", "kind": "EXPENSE", "walletId": bank.ID, "categoryId": food.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodGet, "/api/home", token, nil)
	require.Equal(t, int64(80000), decodeBody[homeJSON](t, rec).TotalBalanceCents)
}
