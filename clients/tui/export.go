package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dohr-michael/simpsched/internal/tasks"
)

// Format selects how list output is written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat accepts one of Formats.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

// Record is the exported shape of a task: timestamps use the storage
// layout and the due label is computed at export time.
type Record struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      string `json:"status" yaml:"status"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	UpdatedAt   string `json:"updated_at" yaml:"updated_at"`
	DueAt       string `json:"due_at,omitempty" yaml:"due_at,omitempty"`
	DueLabel    string `json:"due_label,omitempty" yaml:"due_label,omitempty"`
}

// NewRecord converts t, labelling its due date relative to now.
func NewRecord(t *tasks.Task, now time.Time) Record {
	r := Record{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   tasks.FormatTimestamp(t.CreatedAt),
		UpdatedAt:   tasks.FormatTimestamp(t.UpdatedAt),
	}
	if t.DueAt != nil {
		r.DueAt = tasks.FormatTimestamp(*t.DueAt)
		if !t.Status.Inactive() {
			r.DueLabel = tasks.ClassifyDue(t.DueAt, now).Label
		}
	}
	return r
}

// Render writes list in the requested format.
func Render(w io.Writer, f Format, list []*tasks.Task, now time.Time) error {
	if f == FormatTable || f == "" {
		return RenderTable(w, list, now)
	}

	records := make([]Record, 0, len(list))
	for _, t := range list {
		records = append(records, NewRecord(t, now))
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", f)
}
