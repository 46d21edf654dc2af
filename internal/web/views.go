package web

import (
	"time"

	"mood-tracker/internal/render"
	"mood-tracker/internal/services"
	"mood-tracker/internal/spotify"
)

type taskView struct {
	Index    int       `json:"index"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Deadline time.Time `json:"deadline"`
	Due      string    `json:"due"`
	Overdue  bool      `json:"overdue"`
}

type moodView struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	CSSColor string `json:"css_color"`
	Emoji    string `json:"emoji"`
}

type stateView struct {
	Tasks       []taskView     `json:"tasks"`
	Mood        moodView       `json:"mood"`
	PlaylistKey string         `json:"playlist_key"`
	Playlist    *spotify.Embed `json:"playlist"`
	Quote       string         `json:"quote"`
	Now         time.Time      `json:"now"`
}

func newStateView(snapshot *services.Snapshot, layout string) stateView {
	tasks := make([]taskView, len(snapshot.Tasks))
	for i, task := range snapshot.Tasks {
		tasks[i] = taskView{
			Index:    i,
			ID:       task.ID,
			Name:     task.Name,
			Deadline: task.Deadline,
			Due:      render.DueText(task, snapshot.Now, layout),
			Overdue:  task.IsOverdue(snapshot.Now),
		}
	}

	return stateView{
		Tasks: tasks,
		Mood: moodView{
			Category: snapshot.Mood.Category.String(),
			Label:    snapshot.Mood.Label,
			Color:    string(snapshot.Mood.Color),
			CSSColor: render.CSSColor(snapshot.Mood.Color),
			Emoji:    snapshot.Mood.Emoji,
		},
		PlaylistKey: string(snapshot.PlaylistKey),
		Playlist:    snapshot.Playlist,
		Quote:       snapshot.Quote,
		Now:         snapshot.Now,
	}
}

// pageView is the data for the index template
type pageView struct {
	stateView
	Error        string
	FormName     string
	FormDeadline string
}
