package service

import (
	"context"
	"errors"

	"loja-admin/internal/identity"
	"loja-admin/internal/model"
	"loja-admin/pkg/jwt"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountNotFound     = errors.New("account not found")
	ErrIdentityUnavailable = errors.New("identity service unavailable")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Authenticate(ctx context.Context, token, authorization string) (*model.Account, error)
}

type LoginResponse struct {
	Token   string                `json:"token"`
	Account model.AccountResponse `json:"account"`
}

// forgetter is implemented by lookups that cache accounts.
type forgetter interface {
	Forget(ctx context.Context, email string)
}

type authService struct {
	accounts identity.Lookup
	signer   *jwt.Signer
}

func NewAuthService(accounts identity.Lookup, signer *jwt.Signer) AuthService {
	return &authService{accounts: accounts, signer: signer}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	// 1. Find account through the identity service
	account, err := s.accounts.FindByEmail(ctx, email, "")
	if err != nil {
		return nil, translateIdentityError(err, ErrInvalidCredentials)
	}

	// 2. Verify password; a cached hash may be stale after a password change
	if !account.CheckPassword(password) {
		if f, ok := s.accounts.(forgetter); ok {
			f.Forget(ctx, email)
		}
		return nil, ErrInvalidCredentials
	}

	// 3. Issue token
	token, err := s.signer.GenerateToken(account.Email, string(account.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token:   token,
		Account: account.ToResponse(),
	}, nil
}

// Authenticate validates the bearer token and reloads the account so a
// role change on the identity side takes effect without a new login.
func (s *authService) Authenticate(ctx context.Context, token, authorization string) (*model.Account, error) {
	claims, err := s.signer.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByEmail(ctx, claims.Email, authorization)
	if err != nil {
		return nil, translateIdentityError(err, ErrAccountNotFound)
	}
	return account, nil
}

func translateIdentityError(err error, notFound error) error {
	if errors.Is(err, identity.ErrAccountNotFound) {
		return notFound
	}
	return ErrIdentityUnavailable
}
