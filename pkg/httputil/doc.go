// Package httputil provides the JSON plumbing shared by tracktree's HTTP
// handlers: decoding request bodies, writing JSON responses and mapping
// structured errors from pkg/errors to HTTP status codes.
//
// Every error response has the same shape:
//
//	{"error": {"code": "CYCLIC_INPUT", "message": "record 7 is part of a parent cycle"}}
//
// Internal errors are logged by the caller and reported to clients with a
// generic message.
package httputil
