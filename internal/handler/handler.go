// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate the request into a payload from internal/model,
// call the matching service and write the result. Errors are returned
// untouched; the global error handler formats them.
package handler
