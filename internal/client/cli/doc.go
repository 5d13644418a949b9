// Package cli provides authctl, an interactive operator console for a
// running authkeeper server.
//
// It wires configuration, the gRPC adapter client and a REPL. A background
// watcher probes the server's health service and shows online/offline in
// the prompt.
//
// Commands:
//   - user / email / account: look a user up by id, email or linked account
//   - session: show a session together with its user
//   - revoke: delete a session
//   - unlink: remove a provider account link
//   - deluser: delete a user after confirmation
//   - burn: consume a verification token entered without echo
//   - ping: check server health now
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
