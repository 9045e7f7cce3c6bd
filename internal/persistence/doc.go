// Package persistence serializes writes of the task collection to durable
// storage.
//
// The Coalescer guarantees that two writes never run at the same time and
// that every mutation made before a Flush call reaches storage without the
// caller having to flush again. Flushes that arrive while a write is running
// collapse into a single follow-up write over the freshest state.
package persistence
