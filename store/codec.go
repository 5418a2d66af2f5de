package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/taskman/models"
)

// Supported file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatCSV  = "csv"
)

// tagSeparator joins tags inside a single CSV cell.
const tagSeparator = ";"

var csvHeader = []string{
	"id", "title", "description", "priority", "status",
	"category", "tags", "due_date", "created_at", "completed_at",
}

// codec converts between raw file contents and task records.
type codec interface {
	Encode(records []models.Record) ([]byte, error)
	Decode(data []byte) ([]models.Record, error)
}

// taskDocument wraps the records for formats that need a top-level table.
type taskDocument struct {
	Tasks []models.Record `json:"tasks" toml:"tasks"`
}

type jsonCodec struct{}

func (jsonCodec) Encode(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode accepts a bare array and the {"tasks": [...]} document form.
func (jsonCodec) Decode(data []byte) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc taskDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		return doc.Tasks, nil
	}
	var records []models.Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, err
	}
	return records, nil
}

type yamlCodec struct{}

func (yamlCodec) Encode(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	return yaml.Marshal(records)
}

func (yamlCodec) Decode(data []byte) ([]models.Record, error) {
	var records []models.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

type tomlCodec struct{}

func (tomlCodec) Encode(records []models.Record) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(taskDocument{Tasks: records}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Decode(data []byte) ([]models.Record, error) {
	var doc taskDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}

type csvCodec struct{}

func (csvCodec) Encode(records []models.Record) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range records {
		row := []string{
			r.ID, r.Title, r.Description, r.Priority, r.Status,
			r.Category, strings.Join(r.Tags, tagSeparator),
			deref(r.DueDate), r.CreatedAt, deref(r.CompletedAt),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// Decode maps columns by header name, so columns may appear in any order
// and unknown columns are ignored.
func (csvCodec) Decode(data []byte) ([]models.Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["title"]; !ok {
		return nil, fmt.Errorf("csv header has no %q column", "title")
	}

	var records []models.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		cell := func(name string) string {
			if i, ok := cols[name]; ok && i < len(row) {
				return row[i]
			}
			return ""
		}
		rec := models.Record{
			ID:          cell("id"),
			Title:       cell("title"),
			Description: cell("description"),
			Priority:    cell("priority"),
			Status:      cell("status"),
			Category:    cell("category"),
			DueDate:     optional(cell("due_date")),
			CreatedAt:   cell("created_at"),
			CompletedAt: optional(cell("completed_at")),
		}
		if tags := cell("tags"); tags != "" {
			rec.Tags = strings.Split(tags, tagSeparator)
		}
		records = append(records, rec)
	}
	return records, nil
}

// codecFor returns the codec for a format name.
func codecFor(format string) (codec, error) {
	switch format {
	case FormatJSON:
		return jsonCodec{}, nil
	case FormatYAML:
		return yamlCodec{}, nil
	case FormatTOML:
		return tomlCodec{}, nil
	case FormatCSV:
		return csvCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// NormalizeFormat lower-cases a format name and maps "yml" to "yaml".
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "yml" {
		return FormatYAML
	}
	return format
}

// FormatFromPath infers a format from the file extension, falling back to
// fallback when the extension is not recognised.
func FormatFromPath(path, fallback string) string {
	switch ext := NormalizeFormat(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case FormatJSON, FormatYAML, FormatTOML, FormatCSV:
		return ext
	}
	return fallback
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
