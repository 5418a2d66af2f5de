package store

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/josephgoksu/taskman/models"
)

// ImportResult summarises an Import.
type ImportResult struct {
	Imported int
	// Skipped counts records whose ID already exists in the store or earlier in the file.
	Skipped int
}

// exchangeFormat resolves the format used for export and import files.
// Without an explicit format the extension decides; only a path with no
// extension falls back to JSON.
func exchangeFormat(path, format string) (string, error) {
	format = NormalizeFormat(format)
	if format == "" {
		format = FormatJSON
		if ext := filepath.Ext(path); ext != "" {
			format = NormalizeFormat(strings.TrimPrefix(ext, "."))
		}
	}
	switch format {
	case FormatJSON, FormatYAML, FormatCSV:
		return format, nil
	}
	return "", fmt.Errorf("unsupported exchange format %q (want json, yaml or csv)", format)
}

// Export writes every task to path.
func (s *FileTaskStore) Export(path, format string) (int, error) {
	format, err := exchangeFormat(path, format)
	if err != nil {
		return 0, err
	}
	c, err := codecFor(format)
	if err != nil {
		return 0, err
	}

	data, err := c.Encode(toRecords(s.tasks))
	if err != nil {
		return 0, &StorageError{Op: "encode", Path: path, Err: err}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return 0, &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return 0, &StorageError{Op: "write", Path: path, Err: err}
	}

	s.logger.Debug("exported tasks", "path", path, "format", format, "count", len(s.tasks))
	return len(s.tasks), nil
}

// Import appends the tasks in path whose IDs are not already present.
// Records without an ID get a new one; records without created_at are stamped
// with the current time; missing status and priority take their defaults.
// Every record is validated before anything is added, and the file is
// written once.
func (s *FileTaskStore) Import(path, format string) (ImportResult, error) {
	var result ImportResult

	format, err := exchangeFormat(path, format)
	if err != nil {
		return result, err
	}
	c, err := codecFor(format)
	if err != nil {
		return result, err
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return result, &StorageError{Op: "read", Path: path, Err: err}
	}
	if strings.TrimSpace(string(data)) == "" {
		return result, nil
	}
	records, err := c.Decode(data)
	if err != nil {
		return result, &StorageError{Op: "decode", Path: path, Err: err}
	}

	seen := make(map[string]struct{}, len(s.tasks)+len(records))
	for _, t := range s.tasks {
		seen[t.ID] = struct{}{}
	}

	var incoming []models.Task
	for i, r := range records {
		r, err := s.fillRecord(r, seen)
		if err != nil {
			return ImportResult{}, err
		}
		if _, dup := seen[r.ID]; dup {
			result.Skipped++
			continue
		}
		task, err := models.TaskFromRecord(r)
		if err != nil {
			return ImportResult{}, fmt.Errorf("record %d: %w", i+1, err)
		}
		seen[task.ID] = struct{}{}
		incoming = append(incoming, task)
	}

	if len(incoming) > 0 {
		if err := s.mutate(func() error {
			s.tasks = append(s.tasks, incoming...)
			return nil
		}); err != nil {
			return ImportResult{}, err
		}
	}
	result.Imported = len(incoming)

	s.logger.Debug("imported tasks", "path", path, "format", format,
		"imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// fillRecord supplies defaults for fields an exchange file may leave out.
// The ID is trimmed so duplicate checks see the ID that will be stored.
func (s *FileTaskStore) fillRecord(r models.Record, taken map[string]struct{}) (models.Record, error) {
	r.ID = strings.TrimSpace(r.ID)
	if r.ID == "" {
		for range maxIDAttempts {
			id := s.newID()
			if _, ok := taken[id]; !ok {
				r.ID = id
				break
			}
		}
		if r.ID == "" {
			return r, fmt.Errorf("could not generate a unique task ID after %d attempts", maxIDAttempts)
		}
	}
	if strings.TrimSpace(r.CreatedAt) == "" {
		r.CreatedAt = models.FormatTimestamp(s.now())
	}
	if strings.TrimSpace(r.Status) == "" {
		r.Status = string(models.StatusIncomplete)
	}
	if strings.TrimSpace(r.Priority) == "" {
		r.Priority = string(models.PriorityMedium)
	}
	return r, nil
}
