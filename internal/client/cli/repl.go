package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) prompt() string {
	if a.user != "" {
		return fmt.Sprintf("authcli (%s)> ", a.user)
	}
	return "authcli> "
}

func (a *App) runREPL(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to authkeeper CLI (type 'help' for commands)")

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprint(a.out, a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			return nil
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Available commands: register, login, verify [token], me, exit")
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "verify":
			token := ""
			if len(args) > 0 {
				token = args[0]
			}
			cmdErr = a.Verify(ctx, token)
		case "me":
			cmdErr = a.Me(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			a.printError(cmdErr)
		}
	}
}
