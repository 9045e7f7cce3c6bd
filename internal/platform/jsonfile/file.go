package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phrazzld/tasktracker/internal/domain"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Options configures a File.
type Options struct {
	// AtomicWrite writes to "<path>.tmp" and renames it over the target
	// instead of truncating the target in place.
	AtomicWrite bool
}

// File is the on-disk home of the task collection.
type File struct {
	path   string
	opts   Options
	logger *slog.Logger
}

// New creates a File for the given path. The file does not need to exist.
func New(path string, opts Options, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.Default()
	}

	return &File{
		path:   path,
		opts:   opts,
		logger: logger.With(slog.String("component", "task_file"), slog.String("path", path)),
	}
}

// Path returns the location of the data file.
func (f *File) Path() string {
	return f.path
}

// Load reads the task collection from disk.
//
// A missing file yields an empty collection. So does a file that cannot be
// parsed; that case is logged at WARN and the next save overwrites it.
// Other read failures are returned as a *PersistenceError.
func (f *File) Load(ctx context.Context) ([]domain.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			f.logger.InfoContext(ctx, "data file not found, starting with an empty task list")
			return []domain.Task{}, nil
		}
		return nil, &PersistenceError{Op: "load", Path: f.path, Err: err}
	}

	var tasks []domain.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		f.logger.WarnContext(ctx, "data file is not a valid task list, starting with an empty task list",
			slog.String("error", err.Error()))
		return []domain.Task{}, nil
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	f.logger.InfoContext(ctx, "tasks loaded", slog.Int("task_count", len(tasks)))
	return tasks, nil
}

// Save overwrites the data file with tasks as a pretty-printed JSON array.
// Failures are returned as a *PersistenceError.
func (f *File) Save(ctx context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}

	data, err := Encode(tasks)
	if err != nil {
		return &PersistenceError{Op: "save", Path: f.path, Err: err}
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return &PersistenceError{Op: "save", Path: f.path, Err: err}
		}
	}

	if f.opts.AtomicWrite {
		err = writeAtomic(f.path, data)
	} else {
		err = os.WriteFile(f.path, data, filePerm)
	}
	if err != nil {
		return &PersistenceError{Op: "save", Path: f.path, Err: err}
	}

	f.logger.DebugContext(ctx, "tasks saved",
		slog.Int("task_count", len(tasks)),
		slog.Int("bytes", len(data)))
	return nil
}

// Encode renders tasks the way they are stored on disk: a JSON array
// indented by two spaces.
func Encode(tasks []domain.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
