// Package client is a Go client for the task tracker HTTP API.
//
// Reads are retried up to three times and mutations up to twice, with
// exponential backoff. Client errors (4xx) are never retried.
package client
