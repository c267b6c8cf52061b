// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     CMS backend: Login, banner and news list/upload/delete, Ping.
//  2. A REST implementation (see HTTPClient) bound to one base URL. Every
//     request is intercepted before send to attach the bearer token from
//     the session, and every response is intercepted after receipt: a 401
//     clears the session and fires the unauthorized hook (the CLI wires it
//     to "navigate to the login screen") before the error is returned.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// HTTP outcomes map to sentinel errors matched with errors.Is:
// ErrUnauthorized (401), ErrForbidden (403), ErrNotFound (404),
// ErrUnavailable (transport failures, 5xx) and ErrUnexpectedStatus. Failures
// are never retried.
package client
