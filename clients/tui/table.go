package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dohr-michael/simpsched/internal/tasks"
)

const descriptionWidth = 80

var tableHeaders = []string{"ID", "Title", "Description", "Status", "Due"}

// RenderTable writes tasks as a bordered table, in the order given.
func RenderTable(w io.Writer, list []*tasks.Task, now time.Time) error {
	if len(list) == 0 {
		return Message(w, "No tasks to show.")
	}

	rows := make([][]string, 0, len(list))
	for _, t := range list {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Title,
			t.Description,
			StatusStyle(t.Status).Render(string(t.Status)),
			dueCell(t, now),
		})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// dueCell shows the due timestamp, plus the derived label while the task
// is still active.
func dueCell(t *tasks.Task, now time.Time) string {
	if t.DueAt == nil {
		return ""
	}
	ts := tasks.FormatTimestamp(*t.DueAt)
	if t.Status.Inactive() {
		return ts
	}
	c := tasks.ClassifyDue(t.DueAt, now)
	return ts + " " + SeverityStyle(c.Severity).Render("("+c.Label+")")
}

// RenderTask writes the detail view of a single task.
func RenderTask(w io.Writer, t *tasks.Task, now time.Time) error {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)) + "\n\n")
	field := func(name, value string) {
		sb.WriteString(MutedStyle.Render(fmt.Sprintf("%-9s", name)) + " " + value + "\n")
	}
	field("Status", StatusStyle(t.Status).Render(string(t.Status)))
	if due := dueCell(t, now); due != "" {
		field("Due", due)
	}
	field("Created", tasks.FormatTimestamp(t.CreatedAt))
	field("Updated", tasks.FormatTimestamp(t.UpdatedAt))

	if t.Description != "" {
		sb.WriteString("\n" + renderMarkdown(t.Description, descriptionWidth) + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// renderMarkdown falls back to the raw text when glamour cannot render it.
func renderMarkdown(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithEmoji(),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
