// Package cli provides the interactive secretstash terminal client.
//
// It wires configuration, the local session store and the REST client into a
// small REPL. A saved session is restored on start, so a player who logged in
// earlier goes straight to the game commands.
//
// Commands:
//   - register, login, username (finish a login that has no username yet)
//   - me, secrets, post, claim <id>, stash, ranking
//   - logout, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
