// Package cli provides the interactive authkeeper command-line client.
//
// The REPL started by App.Run reads one command per line:
//
//	register   create an account (email, "First Last" name, password)
//	login      authenticate and remember the issued token
//	verify     check a token (the remembered one when none is given)
//	me         show the account behind the remembered token
//	help, exit
//
// Passwords are read from the terminal without echo.
package cli
