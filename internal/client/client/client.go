package client

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/authapi"
)

// Client is the contract the CLI depends on.
type Client interface {
	Register(ctx context.Context, email, password, displayName string) (string, error)
	Login(ctx context.Context, email, password string) (*authapi.LoginResponse, error)
	Verify(ctx context.Context, token string) (string, error)
	Me(ctx context.Context) (authapi.Account, error)
	Token() string
	Close() error
}
