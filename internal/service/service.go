// Package service holds the business rules of trip listing, client deletion
// and client registration. Services talk to storage only through the
// repository interfaces and report rule violations as *errs.HTTPError.
package service
