// Package api handles incoming HTTP requests for the task collection,
// request validation, and response formatting. It acts as an adapter between
// HTTP clients and the task service, translating HTTP concerns to business
// operations.
package api
