// Package widgets renders small text gauges for Telegram messages.
package widgets

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ClampPercent bounds a displayed percentage to [0, 100].
func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p) || p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Ratio returns current/total bounded to [0, 1]. A non-positive total yields 0.
func Ratio(current, total int) float64 {
	if total <= 0 {
		return 0
	}
	return ClampPercent(float64(current)/float64(total)*100) / 100
}

// ProgressBar draws a bar of the given length filled by current/total.
func ProgressBar(current, total, length int) string {
	return Bar(Ratio(current, total), length)
}

// Bar draws a bar of the given length filled by ratio, which is clamped to [0, 1].
func Bar(ratio float64, length int) string {
	ratio = ClampPercent(ratio*100) / 100

	if length <= 0 {
		return "[]"
	}

	filled := int(ratio * float64(length))
	if filled > length {
		filled = length
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", length-filled) + "]"
}

// Ring renders the daily goal gauge: percentage and learned words out of the goal.
func Ring(learned, goal int) string {
	percent := int(math.Round(Ratio(learned, goal) * 100))

	shown := learned
	if shown > goal {
		shown = goal
	}
	if shown < 0 {
		shown = 0
	}

	return fmt.Sprintf("◯ %d%% · %d / %d", percent, shown, goal)
}

// LevelBar renders the level line with an xp bar.
func LevelBar(level, xp, maxXp, length int) string {
	return fmt.Sprintf("Уровень %d\n%s %d xp / %d xp", level, ProgressBar(xp, maxXp, length), xp, maxXp)
}

// WeekDays are the weekday abbreviations used by the backend, Monday first.
var WeekDays = []string{"ПН", "ВТ", "СР", "ЧТ", "ПТ", "СБ", "ВС"}

// WeekdayIndex maps time.Weekday to a Monday-first index.
func WeekdayIndex(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// StreakRow renders the weekly tracker. Only checked days up to today are marked.
func StreakRow(checked []string, today time.Weekday) string {
	todayIdx := WeekdayIndex(today)

	marked := make(map[string]bool, len(checked))
	for _, d := range checked {
		marked[strings.ToUpper(strings.TrimSpace(d))] = true
	}

	var top, bottom strings.Builder
	for i, day := range WeekDays {
		if i > 0 {
			top.WriteString(" ")
			bottom.WriteString(" ")
		}
		top.WriteString(day)

		switch {
		case i == todayIdx:
			bottom.WriteString("🟢")
		case i < todayIdx && marked[day]:
			bottom.WriteString("✅")
		default:
			bottom.WriteString("⚪")
		}
	}

	return top.String() + "\n" + bottom.String()
}

// DayWord formats a day count with the matching Russian plural.
func DayWord(n int) string {
	switch m10, m100 := n%10, n%100; {
	case m10 == 1 && m100 != 11:
		return fmt.Sprintf("%d день", n)
	case m10 >= 2 && m10 <= 4 && (m100 < 12 || m100 > 14):
		return fmt.Sprintf("%d дня", n)
	}
	return fmt.Sprintf("%d дней", n)
}
