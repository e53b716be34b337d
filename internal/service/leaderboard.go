package service

import (
	"fmt"
	"strings"
)

const leaderboardSize = 10

// formatLeaderboard отрисовывает таблицу лидеров плоским текстом:
// разметку (Markdown, HTML) транспорты добавляют сами, если хотят.
func formatLeaderboard(entries []LeaderboardEntry) string {
	if len(entries) == 0 {
		return "🏆 Лидерборд\n\nПока нет результатов. Будьте первым! 🎯"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏆 Топ %d игроков\n\n", leaderboardSize)

	for i, entry := range entries {
		medal := "🔸"
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}

		name := entry.Name
		if name == "" {
			name = entry.UserID
		}

		fmt.Fprintf(&b, "%s %d. %s — %d правильных ответов\n", medal, i+1, name, entry.Score)
	}

	return strings.TrimRight(b.String(), "\n")
}
