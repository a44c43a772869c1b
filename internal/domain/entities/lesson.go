package entities

import "time"

// LessonSummary is the stored outcome of one lesson.
type LessonSummary struct {
	ID         string
	UserID     int64
	Total      int
	Answered   int
	Correct    int
	OutOfLives bool
	StartedAt  time.Time
	FinishedAt time.Time
}

// Accuracy returns the share of correct answers in percent.
func (s LessonSummary) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered) * 100
}

// LessonStats aggregates the lesson history of a user.
type LessonStats struct {
	Lessons  int
	Answered int
	Correct  int
	LastAt   *time.Time
}

// Accuracy returns the share of correct answers in percent.
func (s LessonStats) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered) * 100
}
