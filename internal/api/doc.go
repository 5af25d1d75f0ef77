// Package api exposes one mock orchestrator instance over HTTP.
//
// It is the request contract layer above the store: it applies
// addressing precedence (path keys overwrite payload keys), synthesizes
// defaults, enforces parent-existence and uniqueness rules, and maps the
// store's absence signals onto 404/409 responses. The store itself never
// produces errors.
package api
