package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"mood-tracker/internal/errors"
	"mood-tracker/internal/render"
	"mood-tracker/internal/services"
)

// Plan output formats
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// PlanCommand sorts a batch of tasks given on the command line and reports
// the resulting mood
type PlanCommand struct {
	app    *App
	format string
}

// NewPlanCommand creates a new plan command handler
func NewPlanCommand(app *App, format string) *PlanCommand {
	if format == "" {
		format = app.config.Commands.PlanDefaultFormat
	}
	return &PlanCommand{app: app, format: strings.ToLower(format)}
}

// Execute adds every "name=deadline" spec in order and prints the sorted plan
func (c *PlanCommand) Execute(ctx context.Context, specs []string) error {
	switch c.format {
	case FormatTable, FormatCSV, FormatJSON, FormatYAML:
	default:
		return errors.NewInvalidInputError("format", c.format, "unsupported format")
	}

	board := services.NewBoardService(
		services.NewMemoryTaskStore(c.app.validator),
		nil,
		nil,
		services.WithClock(timeNow),
	)
	defer board.Close()

	for _, spec := range specs {
		name, deadline, err := parseTaskSpec(spec)
		if err != nil {
			return err
		}
		if _, err := board.AddTask(ctx, name, deadline); err != nil {
			return c.app.errors.Handle(fmt.Sprintf("add task %q", name), err)
		}
	}

	snapshot, err := board.Snapshot(ctx)
	if err != nil {
		return c.app.errors.Handle("build plan", err)
	}

	report := services.NewReportingService(c.app.config.Time.DisplayFormat, c.app.location()).PlanReport(snapshot)

	switch c.format {
	case FormatCSV:
		return c.writeCSV(report)
	case FormatJSON:
		return c.writeJSON(report)
	case FormatYAML:
		return c.writeYAML(report)
	default:
		return c.writeTable(snapshot, report)
	}
}

// parseTaskSpec splits "name=deadline" on the last '='
func parseTaskSpec(spec string) (string, string, error) {
	i := strings.LastIndex(spec, "=")
	if i < 0 {
		return "", "", errors.NewInvalidInputError("task", spec, "expected name=deadline")
	}
	return spec[:i], spec[i+1:], nil
}

func (c *PlanCommand) writeTable(snapshot *services.Snapshot, report *services.PlanReport) error {
	fmt.Fprintln(c.app.out, render.MoodLine(snapshot.Mood))

	if len(report.Tasks) > 0 {
		rows := make([][]string, len(report.Tasks))
		for i, task := range report.Tasks {
			rows[i] = []string{strconv.Itoa(task.Position), task.Name, task.Due}
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "TASK", "DUE").
			Rows(rows...)
		fmt.Fprintln(c.app.out, t.Render())
	}

	fmt.Fprintf(c.app.out, "Playlist: %s (%s)\n", report.PlaylistKey, report.PlaylistURL)
	return nil
}

func (c *PlanCommand) writeCSV(report *services.PlanReport) error {
	writer := csv.NewWriter(c.app.out)

	header := []string{"Position", "Name", "Deadline", "Overdue", "Mood", "Playlist"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, task := range report.Tasks {
		record := []string{
			strconv.Itoa(task.Position),
			task.Name,
			task.Deadline,
			strconv.FormatBool(task.Overdue),
			report.Mood,
			report.PlaylistKey,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (c *PlanCommand) writeJSON(report *services.PlanReport) error {
	encoder := json.NewEncoder(c.app.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (c *PlanCommand) writeYAML(report *services.PlanReport) error {
	encoder := yaml.NewEncoder(c.app.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return encoder.Close()
}
