// Package archivist is a client for the Archivist REST API.
//
// # Overview
//
// Archivist keeps append-only records (assets, events, subjects and
// compliance policies) anchored to a ledger. This package builds the HTTP
// requests, encodes request bodies as JSON, decodes responses into records,
// walks paginated collections and maps HTTP status codes to typed errors.
// Consensus, confirmation and sharing policy enforcement happen on the
// server.
//
// # Usage
//
//	client, err := archivist.New(&archivist.Config{
//	    BaseURL:   "https://rkvst.poc.jitsuin.io",
//	    AuthToken: token,
//	})
//	if err != nil {
//	    return err
//	}
//
//	asset, err := client.Assets().Create(ctx,
//	    []string{"RecordEvidence"},
//	    archivist.Attributes{"arc_display_name": "Radiation bag 1"},
//	    archivist.WithConfirmation(),
//	)
//
//	for event, err := range client.Events().List(archivist.EventsQuery{
//	    AssetIdentity: asset.Identity(),
//	}).All(ctx) {
//	    ...
//	}
//
// # Endpoints
//
// Collection operations (create, list, count) use
// <base>/archivist/<subpath>/<label>; record operations (read, update,
// delete) use <base>/archivist/<subpath>/<identity>:
//
//   - Assets:              /archivist/v2/assets
//   - Events:              /archivist/v2/<asset identity>/events
//   - Subjects:            /archivist/v2/subjects/subjects
//   - Compliance policies: /archivist/v1/compliance_policies
//   - Compliance:          /archivist/v1/compliance/<asset identity>
//
// # Pagination
//
// List returns a Cursor that fetches one page per request, on demand. The
// cursor follows the continuation token from the X-Next-Page-Token header
// (or the next_page_token body field) and stops when a response has none.
// Count requests a single-record page with X-Request-Total-Count and
// returns the X-Total-Count header.
//
// Query parameters are emitted in a fixed order (page_size, page_token,
// then filters sorted by key) and URL-encoded.
//
// # Confirmation
//
// Created records start PENDING. With WithConfirmation, Create re-reads the
// record on an exponential backoff until it is CONFIRMED, returning
// ErrConfirmation on FAILED and ErrTimeout after Config.ConfirmTimeout.
//
// # Error Handling
//
// Every error wraps one sentinel (ErrBadRequest, ErrPermission,
// ErrNotFound, ErrConflict, ErrServiceUnavailable, ErrArchivist,
// ErrTransport, ErrConfirmation, ErrTimeout, ErrDuplicate) and, for HTTP
// failures, is an *Error carrying the status code and body. The client
// never retries on its own; IsRetryable tells callers when a retry makes
// sense.
package archivist
