package widgets

import (
	"math"
	"strings"
	"testing"
	"time"
)

func TestClampPercent(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{250, 100},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := ClampPercent(tt.in); got != tt.want {
			t.Fatalf("ClampPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name                   string
		current, total, length int
		want                   string
	}{
		{name: "empty", current: 0, total: 10, length: 5, want: "[░░░░░]"},
		{name: "half", current: 5, total: 10, length: 4, want: "[██░░]"},
		{name: "overflow clamped", current: 15, total: 10, length: 3, want: "[███]"},
		{name: "zero total", current: 3, total: 0, length: 2, want: "[░░]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressBar(tt.current, tt.total, tt.length); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRing(t *testing.T) {
	if got := Ring(3, 4); got != "◯ 75% · 3 / 4" {
		t.Fatalf("Ring = %q", got)
	}
	if got := Ring(9, 4); got != "◯ 100% · 4 / 4" {
		t.Fatalf("Ring over goal = %q", got)
	}
	if got := Ring(2, 0); got != "◯ 0% · 0 / 0" {
		t.Fatalf("Ring zero goal = %q", got)
	}
}

func TestLevelBar(t *testing.T) {
	got := LevelBar(3, 40, 100, 5)
	if got != "Уровень 3\n[██░░░] 40 xp / 100 xp" {
		t.Fatalf("LevelBar = %q", got)
	}
}

func TestStreakRow(t *testing.T) {
	got := StreakRow([]string{"пн ", "СР", "ПТ"}, time.Thursday)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("want two lines, got %q", got)
	}

	if lines[0] != "ПН ВТ СР ЧТ ПТ СБ ВС" {
		t.Fatalf("header = %q", lines[0])
	}
	// Friday is after today and must not be marked.
	if lines[1] != "✅ ⚪ ✅ 🟢 ⚪ ⚪ ⚪" {
		t.Fatalf("marks = %q", lines[1])
	}
}

func TestWeekdayIndex(t *testing.T) {
	if WeekdayIndex(time.Monday) != 0 || WeekdayIndex(time.Sunday) != 6 {
		t.Fatalf("week must start on Monday")
	}
}

func TestDayWord(t *testing.T) {
	tests := map[int]string{
		0:   "0 дней",
		1:   "1 день",
		2:   "2 дня",
		4:   "4 дня",
		5:   "5 дней",
		11:  "11 дней",
		12:  "12 дней",
		14:  "14 дней",
		21:  "21 день",
		22:  "22 дня",
		25:  "25 дней",
		101: "101 день",
		111: "111 дней",
		112: "112 дней",
		123: "123 дня",
	}

	for n, want := range tests {
		if got := DayWord(n); got != want {
			t.Fatalf("DayWord(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestTween(t *testing.T) {
	tw := Tween{From: 0, To: 10, Duration: time.Second}

	if got := tw.At(500 * time.Millisecond); got != 5 {
		t.Fatalf("linear midpoint = %v", got)
	}
	if got := tw.At(2 * time.Second); got != 10 {
		t.Fatalf("past duration = %v", got)
	}
	if got := tw.At(-time.Second); got != 0 {
		t.Fatalf("before start = %v", got)
	}

	frames := tw.Frames(4)
	if len(frames) != 4 || frames[3] != 10 || frames[0] != 2.5 {
		t.Fatalf("frames = %v", frames)
	}

	spring := Tween{From: 0, To: 1, Duration: time.Second, Ease: Spring}
	last := spring.Frames(10)
	if last[9] != 1 {
		t.Fatalf("spring must settle on target, got %v", last[9])
	}
}
