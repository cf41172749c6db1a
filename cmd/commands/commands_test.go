package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dohr-michael/simpsched/clients/tui"
	"github.com/dohr-michael/simpsched/internal/tasks"
	"github.com/dohr-michael/simpsched/internal/validation"
)

type cliEnv struct {
	db     string
	config string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	dir := t.TempDir()
	return cliEnv{
		db:     filepath.Join(dir, "tasks.db"),
		config: filepath.Join(dir, "config.jsonc"),
	}
}

func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.Writer = &out
	root.ErrWriter = &out
	full := append([]string{"simpsched", "--config", e.config, "--db", e.db}, args...)
	err := root.Run(context.Background(), full)
	return out.String(), err
}

func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func (e cliEnv) listJSON(t *testing.T) []tui.Record {
	t.Helper()
	out := e.mustRun(t, "list", "-o", "json")
	var recs []tui.Record
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("decode list: %v\n%s", err, out)
	}
	return recs
}

func TestCLIAddListShow(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun(t, "add", "-t", "Buy milk", "-d", "two *litres*", "--due", "2099-01-02")
	if !strings.Contains(out, "Task #1 added.") {
		t.Errorf("add output: %q", out)
	}

	recs := env.listJSON(t)
	if len(recs) != 1 {
		t.Fatalf("records: got %d, want 1", len(recs))
	}
	r := recs[0]
	if r.ID != 1 || r.Title != "Buy milk" || r.Status != "pending" {
		t.Errorf("record: %+v", r)
	}
	if r.DueAt != "2099-01-02 23:59:59" || r.DueLabel != "on time" {
		t.Errorf("due: %q %q", r.DueAt, r.DueLabel)
	}

	out = env.mustRun(t, "show", "1")
	if !strings.Contains(out, "Buy milk") || !strings.Contains(out, "litres") {
		t.Errorf("show output:\n%s", out)
	}
}

func TestCLIAddValidation(t *testing.T) {
	env := newCLIEnv(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "-t", "   "}, "title must be non-empty"},
		{[]string{"add", "-t", "x", "--due", "01/02/2024"}, "due_at must be in 'YYYY-MM-DD' or 'YYYY-MM-DD HH:MM:SS' format"},
		{[]string{"add", "-t", "x", "-s", "later"}, "status must be one of: pending, in_progress, done, cancelled"},
	}
	for _, tt := range tests {
		_, err := env.run(t, tt.args...)
		var verr *validation.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%v: got %v, want ValidationError", tt.args, err)
			continue
		}
		if verr.Message != tt.want {
			t.Errorf("%v: got %q, want %q", tt.args, verr.Message, tt.want)
		}
	}

	if recs := env.listJSON(t); len(recs) != 0 {
		t.Errorf("invalid input reached the store: %+v", recs)
	}
}

func TestCLIUpdate(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "add", "-t", "Draft", "--due", "2099-01-01 10:00:00")

	env.mustRun(t, "update", "--title", "Final", "--status", "in_progress", "1")
	r := env.listJSON(t)[0]
	if r.Title != "Final" || r.Status != "in_progress" || r.DueAt != "2099-01-01 10:00:00" {
		t.Errorf("after update: %+v", r)
	}

	env.mustRun(t, "update", "--clear-due", "1")
	if r := env.listJSON(t)[0]; r.DueAt != "" {
		t.Errorf("due not cleared: %+v", r)
	}

	_, err := env.run(t, "update", "--title", "x", "9")
	var verr *validation.ValidationError
	if !errors.As(err, &verr) || verr.Message != "no task found with id 9" {
		t.Errorf("missing id: got %v", err)
	}
}

func TestCLIRemove(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "add", "-t", "a")
	env.mustRun(t, "add", "-t", "b")

	out := env.mustRun(t, "rm", "1")
	if !strings.Contains(out, "Task #1 removed.") {
		t.Errorf("remove output: %q", out)
	}
	recs := env.listJSON(t)
	if len(recs) != 1 || recs[0].ID != 2 {
		t.Errorf("after remove: %+v", recs)
	}

	_, err := env.run(t, "remove", "1")
	var verr *validation.ValidationError
	if !errors.As(err, &verr) || verr.Message != "no task found with id 1" {
		t.Errorf("second remove: got %v", err)
	}

	_, err = env.run(t, "remove", "abc")
	if !errors.As(err, &verr) || verr.Message != "task_id must be an integer" {
		t.Errorf("bad id: got %v", err)
	}
}

func TestCLIShowMissing(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "show", "3")
	if !errors.Is(err, tasks.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCLIListStatusFilter(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "add", "-t", "a")
	env.mustRun(t, "add", "-t", "b", "-s", "in_progress")

	out := env.mustRun(t, "list", "--status", "in_progress", "-o", "yaml")
	if !strings.Contains(out, "title: b") || strings.Contains(out, "title: a") {
		t.Errorf("filtered list:\n%s", out)
	}

	if _, err := env.run(t, "list", "-o", "csv"); err == nil {
		t.Error("csv output accepted")
	}
}

func TestCLIPurgeBefore(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "add", "-t", "finished", "-s", "done")
	env.mustRun(t, "add", "-t", "open")

	out := env.mustRun(t, "purge", "--before", "2099-01-01")
	if !strings.Contains(out, "Removed 1 inactive task(s): finished") {
		t.Errorf("purge output: %q", out)
	}
	if recs := env.listJSON(t); len(recs) != 1 || recs[0].Title != "open" {
		t.Errorf("after purge: %+v", recs)
	}
}

func TestCLIUpdateNothingToUpdate(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "add", "-t", "Same")

	out := env.mustRun(t, "update", "1")
	if !strings.Contains(out, "Nothing to update.") || strings.Contains(out, "updated") {
		t.Errorf("update output: %q", out)
	}
	if r := env.listJSON(t)[0]; r.Title != "Same" {
		t.Errorf("task changed: %+v", r)
	}

	_, err := env.run(t, "update", "4")
	var verr *validation.ValidationError
	if !errors.As(err, &verr) || verr.Message != "no task found with id 4" {
		t.Errorf("missing id: got %v", err)
	}
}

func TestMainReportsFailureOnce(t *testing.T) {
	env := newCLIEnv(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"remove", "99"}, "no task found with id 99"},
		{[]string{"add", "-t", "x", "--due", "03/01/2024"}, "due_at must be in"},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		args := append([]string{"simpsched", "--config", env.config, "--db", env.db}, tt.args...)
		if code := Main(context.Background(), args, &stdout, &stderr); code != 1 {
			t.Errorf("%v: exit code %d, want 1", tt.args, code)
		}
		lines := strings.Split(strings.TrimRight(stderr.String(), "\n"), "\n")
		if len(lines) != 1 || !strings.Contains(lines[0], tt.want) {
			t.Errorf("%v: stderr %q, want one line containing %q", tt.args, stderr.String(), tt.want)
		}
		if stdout.Len() != 0 {
			t.Errorf("%v: unexpected stdout %q", tt.args, stdout.String())
		}
	}
}

func TestMainSuccess(t *testing.T) {
	env := newCLIEnv(t)
	var stdout, stderr bytes.Buffer
	args := []string{"simpsched", "--config", env.config, "--db", env.db, "add", "-t", "ok"}
	if code := Main(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Task #1 added.") || stderr.Len() != 0 {
		t.Errorf("stdout %q stderr %q", stdout.String(), stderr.String())
	}
}
