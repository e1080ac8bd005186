package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"loja-admin/internal/model"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUnavailable     = errors.New("identity service unavailable")
)

// Lookup resolves an operator account by email. authorization is the
// caller's Authorization header, forwarded as is.
type Lookup interface {
	FindByEmail(ctx context.Context, email, authorization string) (*model.Account, error)
}

// Client talks to the identity service over HTTP.
type Client struct {
	baseURL      string
	serviceToken string
	timeout      time.Duration
}

func NewClient(baseURL, serviceToken string) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		serviceToken: serviceToken,
		timeout:      5 * time.Second,
	}
}

func (c *Client) FindByEmail(ctx context.Context, email, authorization string) (*model.Account, error) {
	if authorization == "" && c.serviceToken != "" {
		authorization = "Bearer " + c.serviceToken
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if timeout <= 0 {
		return nil, ctx.Err()
	}

	agent := fiber.Get(c.baseURL + "/usuario/buscar-por-email")
	agent.QueryString("email=" + url.QueryEscape(email))
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if authorization != "" {
		agent.Set(fiber.HeaderAuthorization, authorization)
	}
	agent.Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, errs[0])
	}

	switch {
	case code == fiber.StatusNotFound:
		return nil, ErrAccountNotFound
	case code != fiber.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, code)
	}

	var account model.Account
	if err := json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}
	// some identity deployments answer 200 with an empty body for unknown emails
	if account.Email == "" {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}
