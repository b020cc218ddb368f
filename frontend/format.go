package frontend

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/logrusorgru/aurora"
	"github.com/zeu5/ttt-rl/core"
)

// MarkColor renders X in blue and O in red
func MarkColor(au aurora.Aurora, m core.Mark) string {
	switch m {
	case core.X:
		return au.Blue(m.String()).String()
	case core.O:
		return au.Red(m.String()).String()
	}
	return au.Faint(".").String()
}

// BoardRows renders the cells as three rows of marks
func BoardRows(au aurora.Aurora, cells [core.BoardSize]core.Mark) []string {
	rows := make([]string, 0, 3)
	for r := 0; r < 3; r++ {
		parts := make([]string, 3)
		for c := 0; c < 3; c++ {
			parts[c] = MarkColor(au, cells[3*r+c])
		}
		rows = append(rows, " "+strings.Join(parts, " "))
	}
	return rows
}

func FormatStats(stats core.Stats) string {
	winRate := 0.0
	if stats.Games > 0 {
		winRate = 100 * float64(stats.Wins) / float64(stats.Games)
	}
	return fmt.Sprintf(
		"games %s  wins %s  draws %s  losses %s  win rate %.1f%%  epsilon %.4f",
		humanize.Comma(int64(stats.Games)),
		humanize.Comma(int64(stats.Wins)),
		humanize.Comma(int64(stats.Draws)),
		humanize.Comma(int64(stats.Losses())),
		winRate,
		stats.Epsilon,
	)
}

func FormatStatus(au aurora.Aurora, s core.Status) string {
	switch s {
	case core.StatusTraining:
		return au.Green(s.String()).String()
	case core.StatusPaused:
		return au.Yellow(s.String()).String()
	case core.StatusFailed:
		return au.Bold(au.Red(s.String())).String()
	}
	return s.String()
}
