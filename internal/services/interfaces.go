package services

import (
	"context"

	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/brightpath-lms/quiz-engine/internal/repositories"
	"github.com/brightpath-lms/quiz-engine/internal/session"
)

// ===== REQUEST / RESPONSE STRUCTS =====

type CreateQuizRequest struct {
	CourseID    string                 `json:"course_id" validate:"required"`
	LessonID    string                 `json:"lesson_id" validate:"required"`
	Title       string                 `json:"title" validate:"required,min=1,max=200"`
	Description *string                `json:"description" validate:"omitempty,max=1000"`
	Definition  *models.QuizDefinition `json:"definition"`
}

type UpdateQuizRequest struct {
	Title       *string                `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string                `json:"description" validate:"omitempty,max=1000"`
	Definition  *models.QuizDefinition `json:"definition"`
}

type AddQuestionRequest struct {
	Question *models.Question `json:"question" validate:"required"`
}

type StartAttemptRequest struct {
	QuizID    string `json:"quiz_id" validate:"required"`
	StudentID string `json:"student_id" validate:"required"`
}

type SaveAnswerRequest struct {
	QuestionID string        `json:"question_id" validate:"required"`
	Answer     models.Answer `json:"answer"`
}

// AttemptResponse is what the attempt surface returns to its caller: the
// session state trimmed to what the student may see while in progress.
type AttemptResponse struct {
	AttemptID     string               `json:"attempt_id"`
	QuizID        string               `json:"quiz_id"`
	Status        session.Status       `json:"status"`
	Empty         bool                 `json:"empty"`
	QuestionOrder []string             `json:"question_order,omitempty"`
	Questions     []QuestionForAttempt `json:"questions,omitempty"`
	Answers       models.AnswerState   `json:"answers,omitempty"`
}

// QuestionForAttempt is a question stripped of its correctness bookkeeping,
// in presentation order.
type QuestionForAttempt struct {
	ID          string              `json:"id"`
	Type        models.QuestionType `json:"type"`
	Prompt      string              `json:"prompt"`
	Points      int                 `json:"points"`
	Options     []AttemptOption     `json:"options,omitempty"`
	PairsLeft   []AttemptPairLeft   `json:"pairs_left,omitempty"`
	RightValues []string            `json:"right_values,omitempty"`
}

type AttemptOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type AttemptPairLeft struct {
	PairID string `json:"pair_id"`
	Left   string `json:"left"`
}

// ===== SERVICE INTERFACES =====

// QuizService owns the authoring surface over persisted quiz definitions.
type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest, creatorID string) (*models.Quiz, error)
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	GetByLesson(ctx context.Context, lessonID string) (*models.Quiz, error)
	Update(ctx context.Context, id string, req *UpdateQuizRequest) (*models.Quiz, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error)

	AddQuestion(ctx context.Context, quizID string, question *models.Question) (*models.Quiz, error)
	UpdateQuestion(ctx context.Context, quizID string, question *models.Question) (*models.Quiz, error)
	RemoveQuestion(ctx context.Context, quizID, questionID string) (*models.Quiz, error)
	ReorderQuestions(ctx context.Context, quizID string, order []string) (*models.Quiz, error)
	UpdateSettings(ctx context.Context, quizID string, settings models.QuizSettings) (*models.Quiz, error)
}

// AttemptService orchestrates attempt sessions over the session store and
// emits lifecycle events.
type AttemptService interface {
	Start(ctx context.Context, req *StartAttemptRequest) (*AttemptResponse, error)
	SaveAnswer(ctx context.Context, attemptID string, req *SaveAnswerRequest) error
	Submit(ctx context.Context, attemptID string) (*session.ResultView, error)
	Retry(ctx context.Context, attemptID string) (*AttemptResponse, error)
	GetResult(ctx context.Context, attemptID string) (*session.ResultView, error)
	Get(ctx context.Context, attemptID string) (*AttemptResponse, error)
}

// ExportService renders quiz definitions to downloadable formats.
type ExportService interface {
	ExportQuizToExcel(ctx context.Context, quizID string) ([]byte, error)
	ExportQuizToCSV(ctx context.Context, quizID string) ([]byte, error)
	ExportQuizToJSON(ctx context.Context, quizID string) ([]byte, error)
}
