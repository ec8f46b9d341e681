// Package httputil provides the JSON response and query helpers shared by the
// HTTP handlers.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code. [WriteError] maps an error
// from pkg/errors to an HTTP status and writes it as
//
//	{"code": "INVALID_PROGRESS", "message": "progress 150 out of range [0, 100]"}
//
// Errors without a code become 500 responses with a generic message, so
// internal details never reach the client.
//
// # Query parameters
//
// [QueryProgress] and [QueryScale] read and validate numeric parameters,
// returning coded errors that WriteError understands:
//
//	p, err := httputil.QueryProgress(r, "progress", 0)
//	if err != nil {
//	    httputil.WriteError(w, err)
//	    return
//	}
package httputil
