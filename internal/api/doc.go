// Package api provides an HTTP client for the review service REST API.
//
// # Overview
//
// The client covers every endpoint the synchronization layer consumes:
// authentication status, the product catalog, the comment thread, comment
// and review votes, flags, and the moderation queue. Each endpoint has an
// explicit response model; payloads are decoded with goccy/go-json and then
// validated with go-playground/validator before they are returned.
//
// # Request Handling
//
// All requests:
//   - Carry Accept: application/json and a User-Agent of reviewdesk/<version>
//   - Carry a fresh X-Request-ID so server logs can be correlated
//   - Send Content-Type: application/json when they have a body
//   - Use the caller's context; the default http.Client has no timeout
//
// Query strings are built from tagged structs with go-querystring.
//
// # Error Handling
//
// Three kinds of error leave the client:
//
//   - Transport errors: "execute request: dial tcp: connection refused"
//   - *StatusError for any non-2xx response, with the server's "error" text
//   - ErrMalformedResponse for 2xx bodies that fail to decode or validate
//
// IsUnauthorized and ServerMessage inspect a returned error without type
// assertions at the call site.
//
// # Comment Namespace
//
// The backend stores product reviews in a comment collection originally
// keyed by article. Callers pass the "product_<id>" key as articleID; the
// client does not add the prefix itself.
//
// # Thread Safety
//
// The Client is safe for concurrent use.
package api
