// Package client talks to the authkeeper HTTP API.
//
// HTTPClient implements Client. After a successful Register or Login it keeps
// the returned access token and sends it as a bearer token on later calls
// until Logout.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are returned as
// *APIError, which matches the sentinels by status code:
//
//	errors.Is(err, client.ErrUnauthorized) // 401
//	errors.Is(err, client.ErrForbidden)    // 403
//	errors.Is(err, client.ErrConflict)     // 409
package client
