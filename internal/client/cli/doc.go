// Package cli provides the interactive authctl command-line client.
//
// It wires configuration, the HTTP API client and an interactive REPL.
// A background watcher pings the server and reports online/offline status
// in the prompt.
//
// Commands:
//   - register / login / logout
//   - profile: show the identity the server resolves for the session
//   - users: list all users (admin only)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
