package events

import (
	"time"
)

// EventType represents different types of quiz engine events
type EventType string

const (
	// Attempt events
	EventAttemptStarted   EventType = "attempt.started"
	EventAttemptSubmitted EventType = "attempt.submitted"

	// Completion event: emitted at most once per passing submission. External
	// lesson-completion consumers key off this one.
	EventQuizCompleted EventType = "quiz.completed"
)

// QuizEvent is the base event structure for all quiz engine events
type QuizEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Data      interface{} `json:"data"`
}

// Event payloads

type AttemptStartedEvent struct {
	AttemptID string    `json:"attempt_id"`
	QuizID    string    `json:"quiz_id"`
	StudentID string    `json:"student_id"`
	StartedAt time.Time `json:"started_at"`
}

type AttemptSubmittedEvent struct {
	AttemptID    string    `json:"attempt_id"`
	QuizID       string    `json:"quiz_id"`
	StudentID    string    `json:"student_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Percentage   int       `json:"percentage"`
	EarnedPoints float64   `json:"earned_points"`
	TotalPoints  int       `json:"total_points"`
	Passed       bool      `json:"passed"`
}

type QuizCompletedEvent struct {
	AttemptID   string    `json:"attempt_id"`
	QuizID      string    `json:"quiz_id"`
	LessonID    string    `json:"lesson_id"`
	StudentID   string    `json:"student_id"`
	CompletedAt time.Time `json:"completed_at"`
}
