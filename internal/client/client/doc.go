// Package client talks to the swim-meet backend REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) for the
//     generic resource operations (List, Get, Create, Update, Delete) plus
//     Login, custom Actions and binary Downloads.
//  2. A concrete HTTP implementation (see HTTPClient) that attaches the
//     bearer token and a request id, encodes JSON or multipart bodies and
//     normalises the backend's inconsistent response envelopes.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     session store, applying embedded goose migrations to SQLite.
//
// # Error Handling
//
// Non-2xx responses surface as *APIError. Common conditions are exposed as
// sentinel errors that callers match with errors.Is: ErrUnavailable,
// ErrUnauthorized, ErrNotFound, ErrMalformedResponse.
//
// # Retries
//
// Requests are issued exactly once. There is no retry and no caching.
package client
