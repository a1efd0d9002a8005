// Package cli provides the interactive Oceantic admin command-line client.
//
// It wires configuration, the local session store, the REST client and an
// interactive REPL. One resource page is mounted at a time: "use articles"
// mounts the articles page, after which list, search, filter, paging,
// add/edit forms, delete and status commands operate on it.
//
// Key features:
//   - Login / Logout / WhoAmI (admin role only, session kept on disk)
//   - Resource pages with search, category filter and pagination
//   - Add / Edit forms with local validation and optional file attachment
//   - Event book export (Excel / PDF), optionally archived to S3
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
