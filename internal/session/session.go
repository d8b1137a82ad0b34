// Package session implements the attempt lifecycle: a serializable state
// machine over one quiz definition snapshot, independent of any storage or
// rendering layer.
package session

import (
	"context"
	"errors"

	"github.com/brightpath-lms/quiz-engine/internal/grading"
	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/brightpath-lms/quiz-engine/internal/shuffle"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
)

var (
	ErrNotInProgress   = errors.New("session: attempt is not in progress")
	ErrNotSubmitted    = errors.New("session: attempt has not been submitted")
	ErrAlreadyStarted  = errors.New("session: attempt already started")
	ErrRetryAfterPass  = errors.New("session: passed attempt cannot be retried")
	ErrUnknownQuestion = errors.New("session: answer references unknown question")
)

// CompletionNotifier receives the at-most-once "lesson completed" signal for
// a passing submission. The call is fire-and-forget from the session's point
// of view: implementations own their delivery concerns and the session never
// retries or fails because of them.
type CompletionNotifier interface {
	QuizCompleted(ctx context.Context)
}

// NotifierFunc adapts a function to the CompletionNotifier interface.
type NotifierFunc func(ctx context.Context)

func (f NotifierFunc) QuizCompleted(ctx context.Context) { f(ctx) }

// Session is one user's run at one quiz definition. The definition is an
// immutable snapshot; answers and presentation order belong exclusively to
// this session. The whole value is JSON-serializable so it can live in an
// external session store between requests.
type Session struct {
	Status       Status                 `json:"status"`
	Definition   *models.QuizDefinition `json:"definition"`
	Presentation shuffle.Presentation   `json:"presentation"`
	Answers      models.AnswerState     `json:"answers"`
	Result       *models.QuizResult     `json:"result,omitempty"`

	// CompletionSignaled guards the at-most-once completion notification.
	// It survives serialization so a reloaded session cannot re-signal.
	CompletionSignaled bool `json:"completion_signaled"`
}

// New builds a not-yet-started session over a definition snapshot.
func New(def *models.QuizDefinition) *Session {
	return &Session{
		Status:     StatusNotStarted,
		Definition: def,
	}
}

// Load builds a session from a persisted definition blob. Malformed content
// degrades to an empty quiz, so a broken lesson yields a session that
// reports no questions instead of failing.
func Load(definitionJSON []byte) *Session {
	return New(models.ParseQuizDefinition(definitionJSON))
}

// IsEmpty reports whether the definition carries no questions, either by
// authoring or because the persisted content was unusable.
func (s *Session) IsEmpty() bool {
	return len(s.Definition.Questions) == 0
}

// Start transitions NotStarted -> InProgress: draws the presentation order
// per the definition settings and initializes one empty, type-shaped answer
// entry per question.
func (s *Session) Start() error {
	if s.Status != StatusNotStarted {
		return ErrAlreadyStarted
	}
	s.Presentation = shuffle.Draw(s.Definition)
	s.Answers = models.NewAnswerState(s.Definition)
	s.Status = StatusInProgress
	return nil
}

// SetAnswer records an in-progress edit for one question. Partial completion
// is never blocked; unanswered questions simply grade as misses at submit.
func (s *Session) SetAnswer(questionID string, answer models.Answer) error {
	if s.Status != StatusInProgress {
		return ErrNotInProgress
	}
	if _, ok := s.Answers[questionID]; !ok {
		return ErrUnknownQuestion
	}
	s.Answers[questionID] = &answer
	return nil
}

// Submit transitions InProgress -> Submitted: grades the attempt once and
// stores the immutable result. On a pass that has not signaled before, it
// notifies the completion collaborator exactly once. notifier may be nil.
func (s *Session) Submit(ctx context.Context, notifier CompletionNotifier) (*models.QuizResult, error) {
	if s.Status != StatusInProgress {
		return nil, ErrNotInProgress
	}
	s.Result = grading.Score(s.Definition, s.Answers)
	s.Status = StatusSubmitted

	if s.Result.Passed && !s.CompletionSignaled {
		s.CompletionSignaled = true
		if notifier != nil {
			notifier.QuizCompleted(ctx)
		}
	}
	return s.Result, nil
}

// CanRetry reports whether a retry transition exists: only a submitted,
// failed attempt may be retried. A passed attempt is terminal for its
// session.
func (s *Session) CanRetry() bool {
	return s.Status == StatusSubmitted && s.Result != nil && !s.Result.Passed
}

// Retry transitions Submitted -> InProgress for a failed attempt: re-draws
// the presentation order (a fresh shuffle when enabled) and resets every
// answer to its empty placeholder. The previous result is discarded.
func (s *Session) Retry() error {
	if s.Status != StatusSubmitted {
		return ErrNotSubmitted
	}
	if s.Result != nil && s.Result.Passed {
		return ErrRetryAfterPass
	}
	s.Presentation = shuffle.Draw(s.Definition)
	s.Answers = models.NewAnswerState(s.Definition)
	s.Result = nil
	s.Status = StatusInProgress
	return nil
}

// ===== RESULT DISPLAY =====

// QuestionReview is the per-question comparison shown after grading when the
// settings allow it.
type QuestionReview struct {
	QuestionID    string         `json:"question_id"`
	Prompt        string         `json:"prompt"`
	Correct       bool           `json:"correct"`
	EarnedPoints  float64        `json:"earned_points"`
	MaxPoints     int            `json:"max_points"`
	UserAnswer    *models.Answer `json:"user_answer,omitempty"`
	CorrectAnswer *models.Answer `json:"correct_answer,omitempty"`
	Explanation   string         `json:"explanation,omitempty"`
}

// ResultView is what the display policy permits showing at Submitted.
// Pass/fail is always present; the score appears only with ShowResults, and
// the per-question review only with ShowResults and ShowCorrectAnswers both
// enabled. RetryAllowed already folds in the no-retry-after-pass rule.
type ResultView struct {
	Passed       bool             `json:"passed"`
	RetryAllowed bool             `json:"retry_allowed"`
	Percentage   *int             `json:"percentage,omitempty"`
	EarnedPoints *float64         `json:"earned_points,omitempty"`
	TotalPoints  *int             `json:"total_points,omitempty"`
	Review       []QuestionReview `json:"review,omitempty"`
}

// View applies the display policy to the stored result.
func (s *Session) View() (*ResultView, error) {
	if s.Status != StatusSubmitted || s.Result == nil {
		return nil, ErrNotSubmitted
	}
	view := &ResultView{
		Passed:       s.Result.Passed,
		RetryAllowed: s.CanRetry(),
	}
	if !s.Definition.Settings.ShowResults {
		return view, nil
	}
	view.Percentage = &s.Result.Percentage
	view.EarnedPoints = &s.Result.EarnedPoints
	view.TotalPoints = &s.Result.TotalPoints
	if s.Definition.Settings.ShowCorrectAnswers {
		view.Review = s.buildReview()
	}
	return view, nil
}

func (s *Session) buildReview() []QuestionReview {
	review := make([]QuestionReview, 0, len(s.Result.QuestionResults))
	for _, qr := range s.Result.QuestionResults {
		q := s.Definition.QuestionByID(qr.QuestionID)
		if q == nil {
			continue
		}
		review = append(review, QuestionReview{
			QuestionID:    qr.QuestionID,
			Prompt:        q.Prompt,
			Correct:       qr.Correct,
			EarnedPoints:  qr.EarnedPoints,
			MaxPoints:     qr.MaxPoints,
			UserAnswer:    s.Answers[qr.QuestionID],
			CorrectAnswer: canonicalAnswer(q),
			Explanation:   q.Explanation,
		})
	}
	return review
}

// canonicalAnswer renders the question's correct answer in answer shape so
// the review can show user vs. canonical side by side.
func canonicalAnswer(q *models.Question) *models.Answer {
	answer := &models.Answer{}
	switch q.Type {
	case models.TrueFalse:
		answer.Bool = q.CorrectBool
	case models.SingleChoice:
		for _, opt := range q.Options {
			if opt.IsCorrect {
				id := opt.ID
				answer.Option = &id
				break
			}
		}
	case models.MultipleChoice:
		answer.Options = q.CorrectOptionIDs()
	case models.MatchDrag, models.MatchDropdown:
		answer.Matches = make(map[string]string, len(q.Pairs))
		for _, pair := range q.Pairs {
			answer.Matches[pair.ID] = pair.Right
		}
	case models.OpenAnswer:
		if len(q.AcceptedAnswers) > 0 {
			answer.Text = q.AcceptedAnswers[0]
		}
	}
	return answer
}
