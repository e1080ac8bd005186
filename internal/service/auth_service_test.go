package service

import (
	"context"
	"testing"
	"time"

	"loja-admin/internal/identity"
	"loja-admin/internal/model"
	"loja-admin/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAccounts struct {
	accounts  map[string]*model.Account
	err       error
	lastAuth  string
	forgotten []string
}

func (f *fakeAccounts) FindByEmail(ctx context.Context, email, authorization string) (*model.Account, error) {
	f.lastAuth = authorization
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.accounts[email]
	if !ok {
		return nil, identity.ErrAccountNotFound
	}
	return a, nil
}

func (f *fakeAccounts) Forget(ctx context.Context, email string) {
	f.forgotten = append(f.forgotten, email)
}

func newAuthFixture(t *testing.T) (*fakeAccounts, AuthService, *jwt.Signer) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha-forte"), bcrypt.MinCost)
	require.NoError(t, err)
	accounts := &fakeAccounts{accounts: map[string]*model.Account{
		"gerente@loja": {Email: "gerente@loja", PasswordHash: string(hash), Role: model.RoleAdmin},
	}}
	signer := jwt.NewSigner("test-secret", time.Hour)
	return accounts, NewAuthService(accounts, signer), signer
}

func TestAuthLogin(t *testing.T) {
	accounts, auth, signer := newAuthFixture(t)

	resp, err := auth.Login(context.Background(), "gerente@loja", "s3nha-forte")
	require.NoError(t, err)
	assert.Equal(t, "gerente@loja", resp.Account.Email)
	assert.Contains(t, resp.Account.Privileges, model.PrivRevenueView)
	assert.Empty(t, accounts.lastAuth)

	claims, err := signer.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "gerente@loja", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestAuthLoginFailures(t *testing.T) {
	accounts, auth, _ := newAuthFixture(t)

	_, err := auth.Login(context.Background(), "gerente@loja", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, []string{"gerente@loja"}, accounts.forgotten)

	_, err = auth.Login(context.Background(), "ninguem@loja", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	accounts.err = identity.ErrUnavailable
	_, err = auth.Login(context.Background(), "gerente@loja", "s3nha-forte")
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}

func TestAuthAuthenticate(t *testing.T) {
	accounts, auth, signer := newAuthFixture(t)
	token, err := signer.GenerateToken("gerente@loja", "ADMIN")
	require.NoError(t, err)

	account, err := auth.Authenticate(context.Background(), token, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, account.Role)
	assert.Equal(t, "Bearer "+token, accounts.lastAuth)

	_, err = auth.Authenticate(context.Background(), "garbage", "")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	gone, err := signer.GenerateToken("demitido@loja", "OPERADOR")
	require.NoError(t, err)
	_, err = auth.Authenticate(context.Background(), gone, "")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
