package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tote/internal/logtail"
)

type tickMsg time.Time

type flashDoneMsg struct {
	seq int
}

type activityMsg struct {
	lines []string
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func flashCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func loadActivityCmd(path string, name logtail.Namer) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		recs, err := logtail.Records(path, activityLines)
		if err != nil {
			return activityMsg{lines: []string{"activity unavailable: " + err.Error()}}
		}
		lines := make([]string, 0, len(recs))
		for _, rec := range recs {
			lines = append(lines, logtail.Describe(rec, name))
		}
		return activityMsg{lines: lines}
	}
}
