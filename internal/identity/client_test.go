package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loja-admin/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityServer(t *testing.T, gotAuth *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/usuario/buscar-por-email" {
			http.NotFound(w, r)
			return
		}
		if gotAuth != nil {
			*gotAuth = r.Header.Get("Authorization")
		}
		switch r.URL.Query().Get("email") {
		case "ana+loja@example.com":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"email":"ana+loja@example.com","senha":"$2a$10$hash","role":"ADMIN"}`))
		case "broken@example.com":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFindByEmail(t *testing.T) {
	var auth string
	srv := newIdentityServer(t, &auth)
	client := NewClient(srv.URL+"/", "")

	account, err := client.FindByEmail(context.Background(), "ana+loja@example.com", "Bearer caller")
	require.NoError(t, err)
	assert.Equal(t, "ana+loja@example.com", account.Email)
	assert.Equal(t, "$2a$10$hash", account.PasswordHash)
	assert.Equal(t, model.RoleAdmin, account.Role)
	assert.Equal(t, "Bearer caller", auth)
}

func TestClientUsesServiceTokenWithoutCaller(t *testing.T) {
	var auth string
	srv := newIdentityServer(t, &auth)
	client := NewClient(srv.URL, "svc-token")

	_, err := client.FindByEmail(context.Background(), "ana+loja@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer svc-token", auth)
}

func TestClientErrors(t *testing.T) {
	srv := newIdentityServer(t, nil)
	client := NewClient(srv.URL, "")

	_, err := client.FindByEmail(context.Background(), "nobody@example.com", "")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = client.FindByEmail(context.Background(), "broken@example.com", "")
	assert.ErrorIs(t, err, ErrUnavailable)

	down := NewClient("http://127.0.0.1:1", "")
	_, err = down.FindByEmail(context.Background(), "ana+loja@example.com", "")
	assert.ErrorIs(t, err, ErrUnavailable)
}

type countingLookup struct {
	calls   int
	account *model.Account
	err     error
}

func (l *countingLookup) FindByEmail(ctx context.Context, email, authorization string) (*model.Account, error) {
	l.calls++
	return l.account, l.err
}

func TestCachedLookupWithoutRedis(t *testing.T) {
	next := &countingLookup{account: &model.Account{Email: "a@b.c", Role: model.RoleViewer}}
	cached := NewCachedLookup(next, nil, time.Minute)

	for i := 0; i < 3; i++ {
		account, err := cached.FindByEmail(context.Background(), "a@b.c", "")
		require.NoError(t, err)
		assert.Equal(t, model.RoleViewer, account.Role)
	}
	assert.Equal(t, 3, next.calls)
	cached.Forget(context.Background(), "a@b.c")
}

func TestCachedLookupFallsBackWhenRedisIsDown(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	next := &countingLookup{account: &model.Account{Email: "a@b.c", Role: model.RoleOperator}}
	cached := NewCachedLookup(next, rdb, time.Minute)

	account, err := cached.FindByEmail(context.Background(), "a@b.c", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleOperator, account.Role)
	assert.Equal(t, 1, next.calls)

	next.err, next.account = ErrAccountNotFound, nil
	_, err = cached.FindByEmail(context.Background(), "a@b.c", "")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
