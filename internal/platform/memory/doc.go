// Package memory provides the in-memory implementation of store.TaskStore.
// The collection lives for the lifetime of the process; durability is the
// job of the persistence package, which snapshots it through List.
package memory
