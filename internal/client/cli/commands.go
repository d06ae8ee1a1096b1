package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func (a *App) printError(err error) {
	switch {
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	case errors.Is(err, client.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "Not logged in, use 'login' first")
	default:
		fmt.Fprintf(a.out, "Error [%s]: %v\n", common.ClassOf(err), err)
	}
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "-Enter name (First Last)", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	msg, err := a.client.Register(ctx, email, password, name)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	resp, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.user = resp.User.Email
	fmt.Fprintf(a.out, "Login successful, token valid until %s\n", resp.ExpiresAt.Local().Format(time.RFC1123))
	return nil
}

// Verify checks token, or the remembered token when token is empty.
func (a *App) Verify(ctx context.Context, token string) error {
	if token == "" {
		token = a.client.Token()
	}
	if token == "" {
		return client.ErrNotLoggedIn
	}

	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	subject, err := a.client.Verify(ctx, token)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Token is valid for %s\n", subject)
	return nil
}

func (a *App) Me(ctx context.Context) error {
	ctx, cancel := a.requestContext(ctx)
	defer cancel()

	acc, err := a.client.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Email: %s\n", acc.Email)
	fmt.Fprintf(a.out, "Name:  %s\n", acc.FullName)
	return nil
}
