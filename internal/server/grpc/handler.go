package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/authapi"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

func toAPIAccount(a models.PublicAccount) authapi.Account {
	return authapi.Account{
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FullName,
	}
}

func (s *GRPCServer) Register(ctx context.Context, req *authapi.RegisterRequest) (*authapi.RegisterResponse, error) {
	account, err := s.accounts.Register(ctx, services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return nil, authapi.StatusError(err)
	}

	s.logger.Info(ctx, "Registered", "email", account.Email)
	return &authapi.RegisterResponse{
		Message: fmt.Sprintf("Account '%s' registered successfully.", account.Email),
		Account: toAPIAccount(account),
	}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *authapi.LoginRequest) (*authapi.LoginResponse, error) {
	res, err := s.accounts.Login(ctx, services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, authapi.StatusError(err)
	}

	return &authapi.LoginResponse{
		Token:     res.Token.Value,
		ExpiresAt: res.Token.ExpiresAt,
		User:      toAPIAccount(res.Account),
	}, nil
}

func (s *GRPCServer) Verify(ctx context.Context, req *authapi.VerifyRequest) (*authapi.VerifyResponse, error) {
	subject, err := s.accounts.Verify(ctx, req.Token)
	if err != nil {
		return nil, authapi.StatusError(err)
	}
	return &authapi.VerifyResponse{Valid: true, Subject: subject}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *authapi.MeRequest) (*authapi.MeResponse, error) {
	account, err := s.accounts.Me(ctx, tokenFromContext(ctx))
	if err != nil {
		return nil, authapi.StatusError(err)
	}
	return &authapi.MeResponse{User: toAPIAccount(account)}, nil
}
