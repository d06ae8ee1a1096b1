package client

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/authapi"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn   *grpc.ClientConn
	client authapi.AuthServiceClient

	mu    sync.RWMutex
	token string
}

// NewGRPCClient connects lazily to endpoint. Extra dial options are
// appended after the defaults (insecure transport, bearer interceptor).
func NewGRPCClient(endpoint string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpoint, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = authapi.NewAuthServiceClient(conn)
	return c, nil
}

func withBearer(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	return metadata.NewOutgoingContext(ctx, md)
}

// accessTokenInterceptor attaches the remembered token to calls that need it.
func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if method == authapi.AuthService_Me_FullMethodName {
		if token := c.Token(); token != "" {
			ctx = withBearer(ctx, token)
		}
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// Token returns the token from the last successful Login.
func (c *GRPCClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *GRPCClient) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Register creates an account and returns the server's acknowledgment.
func (c *GRPCClient) Register(ctx context.Context, email, password, displayName string) (string, error) {
	resp, err := c.client.Register(ctx, &authapi.RegisterRequest{Email: email, Password: password, DisplayName: displayName})
	if err != nil {
		return "", mapError(err)
	}
	return resp.Message, nil
}

// Login authenticates and remembers the issued token.
func (c *GRPCClient) Login(ctx context.Context, email, password string) (*authapi.LoginResponse, error) {
	resp, err := c.client.Login(ctx, &authapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	c.setToken(resp.Token)
	return resp, nil
}

// Verify returns the subject of token.
func (c *GRPCClient) Verify(ctx context.Context, token string) (string, error) {
	resp, err := c.client.Verify(ctx, &authapi.VerifyRequest{Token: token})
	if err != nil {
		return "", mapError(err)
	}
	return resp.Subject, nil
}

// Me returns the account of the logged-in user.
func (c *GRPCClient) Me(ctx context.Context) (authapi.Account, error) {
	if c.Token() == "" {
		return authapi.Account{}, ErrNotLoggedIn
	}
	resp, err := c.client.Me(ctx, &authapi.MeRequest{})
	if err != nil {
		return authapi.Account{}, mapError(err)
	}
	return resp.User, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func mapError(err error) error {
	if st, ok := status.FromError(err); ok && st.Code() == codes.Unavailable {
		return ErrUnavailable
	}
	return authapi.ErrorFromStatus(err)
}
