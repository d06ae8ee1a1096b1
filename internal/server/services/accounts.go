// Package services contains the server-side business logic. AccountService
// registers accounts, authenticates logins, and issues and verifies tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/accounts"
)

// Repositories vends account repositories bound to an acquired handle.
// *storage.Store and every repomanager implementation satisfy it.
type Repositories interface {
	Accounts(conn dbx.DBTX) accounts.Repository
}

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	Issue(subject string) (auth.Token, error)
	Verify(token string) (string, error)
}

// RegisterInput is what a caller supplies to create an account.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
		validation.Field(&in.DisplayName, validation.Required, validation.By(func(v interface{}) error {
			_, _, err := splitDisplayName(v.(string))
			return err
		})),
	)
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// AuthResult is returned on successful login. Failures carry no account
// data at all.
type AuthResult struct {
	Token   auth.Token
	Account models.PublicAccount
}

type AccountService struct {
	acquirer dbx.Acquirer
	repos    Repositories
	tokens   TokenManager
	secrets  auth.SecretComparer
	logger   logging.Logger

	dummyOnce sync.Once
	dummy     string
}

func NewAccountService(acq dbx.Acquirer, repos Repositories, tokens TokenManager, secrets auth.SecretComparer, logger logging.Logger) *AccountService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &AccountService{
		acquirer: acq,
		repos:    repos,
		tokens:   tokens,
		secrets:  secrets,
		logger:   logger,
	}
}

// Register validates in and creates the account. Nothing is written when
// validation fails or the email is taken; the store's unique constraint
// decides races between concurrent registrations.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (models.PublicAccount, error) {
	if err := in.Validate(); err != nil {
		return models.PublicAccount{}, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	first, last, _ := splitDisplayName(in.DisplayName)

	secret, err := s.secrets.Prepare(in.Password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return models.PublicAccount{}, err
		}
		return models.PublicAccount{}, fmt.Errorf("prepare secret: %w", err)
	}

	account := &models.Account{
		Email:     in.Email,
		Password:  secret,
		FirstName: first,
		LastName:  last,
	}

	var created *models.Account
	err = dbx.WithConn(ctx, s.acquirer, func(ctx context.Context, conn dbx.DBTX) error {
		var err error
		created, err = s.repos.Accounts(conn).Create(ctx, account)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return models.PublicAccount{}, common.ErrorAlreadyExists
		}
		return models.PublicAccount{}, s.storeError(ctx, "register", err)
	}

	return created.Public(), nil
}

// Login checks the credentials and issues a token bound to the account's
// email. Unknown emails and wrong passwords both yield
// common.ErrorInvalidCredentials after one secret comparison.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	account, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.secrets.Compare(s.dummySecret(), in.Password)
			return nil, common.ErrorInvalidCredentials
		}
		return nil, s.storeError(ctx, "login", err)
	}

	if !s.secrets.Compare(account.Password, in.Password) {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.tokens.Issue(account.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, Account: account.Public()}, nil
}

// Verify returns the subject of a valid token. It never touches the store.
func (s *AccountService) Verify(_ context.Context, token string) (string, error) {
	return s.tokens.Verify(token)
}

// Me resolves a token to the public view of its account.
func (s *AccountService) Me(ctx context.Context, token string) (models.PublicAccount, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return models.PublicAccount{}, err
	}

	account, err := s.findByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.PublicAccount{}, err
		}
		return models.PublicAccount{}, s.storeError(ctx, "me", err)
	}
	return account.Public(), nil
}

func (s *AccountService) findByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account *models.Account
	err := dbx.WithConn(ctx, s.acquirer, func(ctx context.Context, conn dbx.DBTX) error {
		var err error
		account, err = s.repos.Accounts(conn).GetByEmail(ctx, email)
		return err
	})
	return account, err
}

// storeError logs an infrastructure failure and classifies it. Exhausted
// pools and cancelled callers keep their own identity.
func (s *AccountService) storeError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrPoolExhausted):
		s.logger.Warn(ctx, "store handle pool exhausted", "op", op)
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	s.logger.Error(ctx, "store failure", "op", op, "error", err)
	return fmt.Errorf("%w: %w", common.ErrorStore, err)
}

// dummySecret is a stored-form secret no real password matches, used to
// keep the unknown-email path doing the same comparison work.
func (s *AccountService) dummySecret() string {
	s.dummyOnce.Do(func() {
		d, err := s.secrets.Prepare(uuid.NewString())
		if err != nil {
			d = uuid.NewString()
		}
		s.dummy = d
	})
	return s.dummy
}
