// Package jsonfile reads and writes the task collection as a single
// pretty-printed JSON array on disk.
//
// The file is read once at startup and fully overwritten on every save.
// By default the overwrite happens in place, so a crash mid-write can leave a
// truncated file; setting Options.AtomicWrite switches to write-then-rename.
package jsonfile
