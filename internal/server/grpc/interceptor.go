package grpc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/authapi"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type ctxKey string

const tokenKey ctxKey = "bearerToken"

// protected lists methods that need a bearer token.
var protected = map[string]bool{
	authapi.AuthService_Me_FullMethodName: true,
}

func tokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}

// bearerToken returns the token from an "authorization: Bearer <token>"
// metadata entry.
func bearerToken(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, v := range md.Get(common.AuthorizationHeaderName) {
		if len(v) > len(common.BearerPrefix) && strings.EqualFold(v[:len(common.BearerPrefix)], common.BearerPrefix) {
			return strings.TrimSpace(v[len(common.BearerPrefix):]), true
		}
	}
	return "", false
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protected[info.FullMethod] {
		return handler(ctx, req)
	}

	token, ok := bearerToken(ctx)
	if !ok || token == "" {
		return nil, authapi.StatusError(fmt.Errorf("%w: missing bearer token", common.ErrInvalidToken))
	}

	return handler(context.WithValue(ctx, tokenKey, token), req)
}

// loggingInterceptor logs method, duration and error class. Payloads are
// never logged since they carry passwords and tokens.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	args := []any{"method", info.FullMethod, "duration", time.Since(start)}
	if err != nil {
		s.logger.Info(ctx, "rpc failed", append(args, "class", authapi.ClassFromStatus(err))...)
	} else {
		s.logger.Debug(ctx, "rpc", args...)
	}
	return resp, err
}
