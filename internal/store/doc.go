// Package store defines interfaces for task data operations.
// These interfaces abstract the in-memory task collection from the
// application's core logic, so services depend only on the contract and not
// on how tasks are held or persisted.
package store
