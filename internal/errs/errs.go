// Package errs defines the error shapes returned by the HTTP API.
//
// Every failure a client can see is an *HTTPError serialised as JSON:
//
//	{"code":"CLIENT_NOT_FOUND","message":"Client not found","status":404,"override":true,"errors":null}
//
// Services return these directly for business rule violations; anything else
// is translated by the global error handler (database errors go through sqlerr).
package errs
