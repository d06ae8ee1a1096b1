// Package client is the typed gRPC client of authkeeper.AuthService.
//
// GRPCClient remembers the token returned by the last successful Login and
// attaches it as a bearer token to calls that need one (Me). Status errors
// are turned back into the sentinel errors of package common, so callers
// match them with errors.Is; an unreachable server yields ErrUnavailable.
package client
