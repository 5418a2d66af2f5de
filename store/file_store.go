package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/josephgoksu/taskman/internal/util"
	"github.com/josephgoksu/taskman/models"
)

const (
	backupSuffix = ".backup"
	tempSuffix   = ".tmp"

	// maxIDAttempts bounds ID regeneration when a generated ID is already taken.
	maxIDAttempts = 8
)

// Config configures a FileTaskStore.
type Config struct {
	// Path is the data file location.
	Path string
	// Format is json, yaml or toml. Empty infers it from Path, defaulting to json.
	Format string
	// Backup copies the previous data file to "<Path>.backup" before every save.
	Backup bool
}

// Option customises a FileTaskStore.
type Option func(*FileTaskStore)

// WithFs sets the filesystem the store reads and writes. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *FileTaskStore) { s.fs = fs }
}

// WithLogger sets the logger for load and save events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *FileTaskStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source used for created_at and completed_at.
func WithClock(now func() time.Time) Option {
	return func(s *FileTaskStore) { s.now = now }
}

// WithIDGenerator sets the task ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *FileTaskStore) { s.newID = gen }
}

// FileTaskStore implements the TaskStore interface using a single file.
// It keeps the whole collection in memory, in insertion order, and rewrites
// the file after every change. It is not safe for concurrent use.
type FileTaskStore struct {
	fs     afero.Fs
	path   string
	format string
	codec  codec
	backup bool
	tasks  []models.Task
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewFileTaskStore creates a new FileTaskStore without reading the data file.
// Call Load, or use Open, before using it.
func NewFileTaskStore(cfg Config, opts ...Option) (*FileTaskStore, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("data file path is required")
	}
	format := NormalizeFormat(cfg.Format)
	if format == "" {
		format = FormatFromPath(path, FormatJSON)
	}
	switch format {
	case FormatJSON, FormatYAML, FormatTOML:
	default:
		return nil, fmt.Errorf("unsupported data format %q (want json, yaml or toml)", cfg.Format)
	}
	c, err := codecFor(format)
	if err != nil {
		return nil, err
	}

	s := &FileTaskStore{
		fs:     afero.NewOsFs(),
		path:   path,
		format: format,
		codec:  c,
		backup: cfg.Backup,
		logger: slog.New(slog.DiscardHandler),
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open creates a FileTaskStore and loads its data file.
func Open(cfg Config, opts ...Option) (*FileTaskStore, error) {
	s, err := NewFileTaskStore(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the data file into memory, replacing the current collection.
func (s *FileTaskStore) Load() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.tasks = nil
			s.logger.Debug("data file not found, starting empty", "path", s.path)
			return nil
		}
		return &StorageError{Op: "read", Path: s.path, Err: err}
	}

	tasks, err := decodeTasks(s.codec, data)
	if err != nil {
		return &StorageError{Op: "decode", Path: s.path, Err: err}
	}
	s.tasks = tasks
	s.logger.Debug("loaded tasks", "path", s.path, "format", s.format, "count", len(tasks))
	return nil
}

// Save writes the collection to a temporary file and renames it over the data file.
func (s *FileTaskStore) Save() error {
	data, err := s.codec.Encode(toRecords(s.tasks))
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	if s.backup {
		if err := s.copyFile(s.path, s.path+backupSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return &StorageError{Op: "backup", Path: s.path + backupSuffix, Err: err}
		}
	}

	tempPath := s.path + tempSuffix
	if err := afero.WriteFile(s.fs, tempPath, data, 0o644); err != nil {
		_ = s.fs.Remove(tempPath)
		return &StorageError{Op: "write", Path: tempPath, Err: err}
	}
	if err := s.fs.Rename(tempPath, s.path); err != nil {
		_ = s.fs.Remove(tempPath)
		return &StorageError{Op: "rename", Path: s.path, Err: err}
	}

	s.logger.Debug("saved tasks", "path", s.path, "count", len(s.tasks))
	return nil
}

// Add creates a new task and persists it.
func (s *FileTaskStore) Add(in models.TaskInput) (models.Task, error) {
	id, err := s.uniqueID()
	if err != nil {
		return models.Task{}, err
	}
	task, err := models.NewTask(id, in, s.now())
	if err != nil {
		return models.Task{}, err
	}

	if err := s.mutate(func() error {
		s.tasks = append(s.tasks, task)
		return nil
	}); err != nil {
		return models.Task{}, err
	}

	s.logger.Debug("added task", "id", task.ID, "title", task.Title)
	return task.Clone(), nil
}

// Get retrieves a task by its exact ID.
func (s *FileTaskStore) Get(id string) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, notFound(id)
	}
	return s.tasks[i].Clone(), nil
}

// Resolve retrieves a task by exact ID or unique ID prefix.
func (s *FileTaskStore) Resolve(idOrPrefix string) (models.Task, error) {
	ids := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		ids[i] = t.ID
	}
	id, err := util.ResolvePrefix(idOrPrefix, ids)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return models.Task{}, notFound(idOrPrefix)
		}
		return models.Task{}, err
	}
	return s.Get(id)
}

// List returns the tasks matching the filter in insertion order.
func (s *FileTaskStore) List(filter Filter) []models.Task {
	now := s.now()
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Match(t, now) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Update applies a partial change to a task and persists it.
// An empty update returns the task without writing the file.
func (s *FileTaskStore) Update(id string, update models.TaskUpdate) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, notFound(id)
	}
	if update.IsEmpty() {
		return s.tasks[i].Clone(), nil
	}

	if err := s.mutate(func() error {
		return s.tasks[i].Apply(update)
	}); err != nil {
		return models.Task{}, err
	}

	s.logger.Debug("updated task", "id", id)
	return s.tasks[i].Clone(), nil
}

// Delete removes a task and persists the collection.
func (s *FileTaskStore) Delete(id string) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, notFound(id)
	}
	removed := s.tasks[i]

	if err := s.mutate(func() error {
		s.tasks = slices.Delete(s.tasks, i, i+1)
		return nil
	}); err != nil {
		return models.Task{}, err
	}

	s.logger.Debug("deleted task", "id", id)
	return removed, nil
}

// Complete marks a task as complete and persists it.
func (s *FileTaskStore) Complete(id string) (models.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, notFound(id)
	}
	if s.tasks[i].IsComplete() {
		return s.tasks[i].Clone(), models.ErrAlreadyCompleted
	}

	if err := s.mutate(func() error {
		return s.tasks[i].Complete(s.now())
	}); err != nil {
		return models.Task{}, err
	}

	s.logger.Debug("completed task", "id", id)
	return s.tasks[i].Clone(), nil
}

// Backup copies the data file to dest. When the data file does not exist yet
// the current collection is written instead.
func (s *FileTaskStore) Backup(dest string) (string, error) {
	if strings.TrimSpace(dest) == "" {
		dest = s.path + backupSuffix
	}
	if dir := filepath.Dir(dest); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return "", &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	err := s.copyFile(s.path, dest)
	if errors.Is(err, os.ErrNotExist) {
		data, encErr := s.codec.Encode(toRecords(s.tasks))
		if encErr != nil {
			return "", &StorageError{Op: "encode", Path: dest, Err: encErr}
		}
		err = afero.WriteFile(s.fs, dest, data, 0o644)
	}
	if err != nil {
		return "", &StorageError{Op: "backup", Path: dest, Err: err}
	}

	s.logger.Debug("backed up tasks", "path", s.path, "dest", dest)
	return dest, nil
}

// Restore replaces the collection with the tasks stored in src.
// The source is decoded and validated in full before anything is written;
// its format is taken from its extension, defaulting to the store's format.
func (s *FileTaskStore) Restore(src string) error {
	data, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return &StorageError{Op: "read", Path: src, Err: err}
	}
	c, err := codecFor(FormatFromPath(src, s.format))
	if err != nil {
		return &StorageError{Op: "decode", Path: src, Err: err}
	}
	tasks, err := decodeTasks(c, data)
	if err != nil {
		return &StorageError{Op: "decode", Path: src, Err: err}
	}

	if err := s.mutate(func() error {
		s.tasks = tasks
		return nil
	}); err != nil {
		return err
	}

	s.logger.Debug("restored tasks", "path", s.path, "src", src, "count", len(tasks))
	return nil
}

// Path returns the data file location.
func (s *FileTaskStore) Path() string {
	return s.path
}

// Format returns the data file format.
func (s *FileTaskStore) Format() string {
	return s.format
}

// Close releases the in-memory collection. The store holds no open files.
func (s *FileTaskStore) Close() error {
	s.tasks = nil
	return nil
}

// mutate runs fn and saves. If fn or the save fails, the collection is
// restored to its state before the call.
func (s *FileTaskStore) mutate(fn func() error) error {
	snapshot := cloneTasks(s.tasks)
	if err := fn(); err != nil {
		s.tasks = snapshot
		return err
	}
	if err := s.Save(); err != nil {
		s.tasks = snapshot
		return err
	}
	return nil
}

func (s *FileTaskStore) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

func (s *FileTaskStore) uniqueID() (string, error) {
	for range maxIDAttempts {
		id := s.newID()
		if s.indexOf(id) < 0 {
			return id, nil
		}
		s.logger.Debug("generated task ID already in use, retrying", "id", id)
	}
	return "", fmt.Errorf("could not generate a unique task ID after %d attempts", maxIDAttempts)
}

func (s *FileTaskStore) copyFile(src, dest string) error {
	data, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, dest, data, 0o644)
}

// decodeTasks parses and validates file contents. Blank content is an empty collection.
func decodeTasks(c codec, data []byte) ([]models.Task, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	records, err := c.Decode(data)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		task, err := models.TaskFromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		if _, dup := seen[task.ID]; dup {
			return nil, fmt.Errorf("task %d: duplicate id %s", i+1, task.ID)
		}
		seen[task.ID] = struct{}{}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func toRecords(tasks []models.Task) []models.Record {
	records := make([]models.Record, len(tasks))
	for i, t := range tasks {
		records[i] = t.Record()
	}
	return records
}

func cloneTasks(tasks []models.Task) []models.Task {
	if tasks == nil {
		return nil
	}
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
