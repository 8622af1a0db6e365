// Package api provides the HTTP handlers for the review engine: auth,
// subjects, session logging, and the review dashboard endpoints. Handlers
// translate between JSON payloads and the service layer, map service errors
// to status codes, and never expose internal error details to clients.
package api
