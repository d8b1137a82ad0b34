package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/brightpath-lms/quiz-engine/internal/session"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is the storage-level not-found condition, normalized across
// backends so services never depend on gorm or redis sentinel errors.
var ErrNotFound = errors.New("repository: record not found")

// IsNotFoundError reports whether err is any backend's not-found condition.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, redis.Nil)
}

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	CourseID  *string    `json:"course_id"`
	LessonID  *string    `json:"lesson_id"`
	CreatedBy *string    `json:"created_by"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortBy    string     `json:"sort_by"`    // "created_at", "title"
	SortOrder string     `json:"sort_order"` // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

// QuizRepository is the content-store boundary for persisted quiz
// definitions.
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)
	GetByLesson(ctx context.Context, lessonID string) (*models.Quiz, error)
}

// AttemptRecord is a stored attempt: ownership metadata plus the engine
// session itself.
type AttemptRecord struct {
	AttemptID string           `json:"attempt_id"`
	QuizID    string           `json:"quiz_id"`
	LessonID  string           `json:"lesson_id"`
	StudentID string           `json:"student_id"`
	StartedAt time.Time        `json:"started_at"`
	Session   *session.Session `json:"session"`
}

// SessionStore persists in-progress attempt sessions between requests. Each
// attempt owns its record exclusively; the store offers no cross-session
// consistency guarantee.
type SessionStore interface {
	Save(ctx context.Context, record *AttemptRecord) error
	Get(ctx context.Context, attemptID string) (*AttemptRecord, error)
	Delete(ctx context.Context, attemptID string) error
}

// Repository bundles the stores the services operate on.
type Repository interface {
	Quiz() QuizRepository
	Session() SessionStore
}
