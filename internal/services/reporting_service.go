package services

import (
	"time"

	"mood-tracker/internal/render"
)

// ReportTask is one row of a plan report
type ReportTask struct {
	Position  int    `json:"position" yaml:"position"`
	Name      string `json:"name" yaml:"name"`
	Deadline  string `json:"deadline" yaml:"deadline"`
	Due       string `json:"due" yaml:"due"`
	Remaining string `json:"remaining" yaml:"remaining"`
	Overdue   bool   `json:"overdue" yaml:"overdue"`
}

// PlanReport is an export-friendly view of a snapshot
type PlanReport struct {
	GeneratedAt string       `json:"generated_at" yaml:"generated_at"`
	Mood        string       `json:"mood" yaml:"mood"`
	Label       string       `json:"label" yaml:"label"`
	Emoji       string       `json:"emoji" yaml:"emoji"`
	Color       string       `json:"color" yaml:"color"`
	PlaylistKey string       `json:"playlist_key" yaml:"playlist_key"`
	PlaylistURL string       `json:"playlist_url" yaml:"playlist_url"`
	Quote       string       `json:"quote,omitempty" yaml:"quote,omitempty"`
	Tasks       []ReportTask `json:"tasks" yaml:"tasks"`
}

// ReportingService turns snapshots into reports
type ReportingService interface {
	PlanReport(snapshot *Snapshot) *PlanReport
}

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	layout   string
	location *time.Location
}

// NewReportingService creates a reporting service. Times are shown in loc
// using layout for the due text.
func NewReportingService(layout string, loc *time.Location) ReportingService {
	if loc == nil {
		loc = time.Local
	}
	return &reportingServiceImpl{layout: layout, location: loc}
}

// PlanReport builds the report for snapshot, tasks numbered from 1 in sorted order
func (r *reportingServiceImpl) PlanReport(snapshot *Snapshot) *PlanReport {
	report := &PlanReport{
		GeneratedAt: snapshot.Now.In(r.location).Format(time.RFC3339),
		Mood:        snapshot.Mood.Category.String(),
		Label:       snapshot.Mood.Label,
		Emoji:       snapshot.Mood.Emoji,
		Color:       string(snapshot.Mood.Color),
		PlaylistKey: string(snapshot.PlaylistKey),
		Quote:       snapshot.Quote,
		Tasks:       make([]ReportTask, len(snapshot.Tasks)),
	}
	if snapshot.Playlist != nil {
		report.PlaylistURL = snapshot.Playlist.URL
	}

	for i, task := range snapshot.Tasks {
		local := task
		local.Deadline = task.Deadline.In(r.location)
		report.Tasks[i] = ReportTask{
			Position:  i + 1,
			Name:      task.Name,
			Deadline:  local.Deadline.Format(time.RFC3339),
			Due:       render.DueText(local, snapshot.Now, r.layout),
			Remaining: task.TimeRemaining(snapshot.Now).Round(time.Minute).String(),
			Overdue:   task.IsOverdue(snapshot.Now),
		}
	}

	return report
}
