// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between HTTP clients and the
// task service, translating HTTP concerns to business operations.
//
// Every failure leaves through HandleAPIError, which picks the status with
// MapErrorToStatusCode and the client-facing text with ErrorMessage.
package api
