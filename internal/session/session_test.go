package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

// twoQuestionDefinition builds a quiz a student can pass or fail at will:
// both questions are true_false worth 1 point, passing score 50.
func twoQuestionDefinition() *models.QuizDefinition {
	settings := models.DefaultQuizSettings()
	settings.PassingScore = 50
	return &models.QuizDefinition{
		Questions: []*models.Question{
			{ID: "q1", Type: models.TrueFalse, Prompt: "one", Points: 1, CorrectBool: boolPtr(true)},
			{ID: "q2", Type: models.TrueFalse, Prompt: "two", Points: 1, CorrectBool: boolPtr(true)},
		},
		Settings: settings,
	}
}

// countingNotifier records how many times the completion signal fired.
type countingNotifier struct {
	calls int
}

func (n *countingNotifier) QuizCompleted(ctx context.Context) { n.calls++ }

func TestSession_Lifecycle(t *testing.T) {
	sess := New(twoQuestionDefinition())
	assert.Equal(t, StatusNotStarted, sess.Status)
	assert.False(t, sess.IsEmpty())

	require.NoError(t, sess.Start())
	assert.Equal(t, StatusInProgress, sess.Status)
	assert.Equal(t, []string{"q1", "q2"}, sess.Presentation.QuestionOrder)
	require.Len(t, sess.Answers, 2)

	require.NoError(t, sess.SetAnswer("q1", models.Answer{Bool: boolPtr(true)}))
	require.NoError(t, sess.SetAnswer("q2", models.Answer{Bool: boolPtr(true)}))

	result, err := sess.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, sess.Status)
	assert.Equal(t, 100, result.Percentage)
	assert.True(t, result.Passed)
}

func TestSession_TransitionGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("StartTwice", func(t *testing.T) {
		sess := New(twoQuestionDefinition())
		require.NoError(t, sess.Start())
		assert.ErrorIs(t, sess.Start(), ErrAlreadyStarted)
	})

	t.Run("AnswerBeforeStart", func(t *testing.T) {
		sess := New(twoQuestionDefinition())
		err := sess.SetAnswer("q1", models.Answer{Bool: boolPtr(true)})
		assert.ErrorIs(t, err, ErrNotInProgress)
	})

	t.Run("AnswerUnknownQuestion", func(t *testing.T) {
		sess := New(twoQuestionDefinition())
		require.NoError(t, sess.Start())
		err := sess.SetAnswer("ghost", models.Answer{Bool: boolPtr(true)})
		assert.ErrorIs(t, err, ErrUnknownQuestion)
	})

	t.Run("SubmitBeforeStart", func(t *testing.T) {
		sess := New(twoQuestionDefinition())
		_, err := sess.Submit(ctx, nil)
		assert.ErrorIs(t, err, ErrNotInProgress)
	})

	t.Run("SubmitTwice", func(t *testing.T) {
		sess := New(twoQuestionDefinition())
		require.NoError(t, sess.Start())
		_, err := sess.Submit(ctx, nil)
		require.NoError(t, err)
		_, err = sess.Submit(ctx, nil)
		assert.ErrorIs(t, err, ErrNotInProgress)
	})

	t.Run("AnswerAfterSubmit", func(t *testing.T) {
		sess := New(twoQuestionDefinition())
		require.NoError(t, sess.Start())
		_, err := sess.Submit(ctx, nil)
		require.NoError(t, err)
		err = sess.SetAnswer("q1", models.Answer{Bool: boolPtr(true)})
		assert.ErrorIs(t, err, ErrNotInProgress)
	})

	t.Run("RetryWithoutSubmit", func(t *testing.T) {
		sess := New(twoQuestionDefinition())
		require.NoError(t, sess.Start())
		assert.ErrorIs(t, sess.Retry(), ErrNotSubmitted)
	})
}

func TestSession_SubmitPartiallyAnswered(t *testing.T) {
	sess := New(twoQuestionDefinition())
	require.NoError(t, sess.Start())
	require.NoError(t, sess.SetAnswer("q1", models.Answer{Bool: boolPtr(true)}))

	result, err := sess.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Percentage)
	assert.True(t, result.Passed)
	assert.Equal(t, 1.0, result.EarnedPoints)
}

func TestSession_RetryAfterFail(t *testing.T) {
	sess := New(twoQuestionDefinition())
	require.NoError(t, sess.Start())
	require.NoError(t, sess.SetAnswer("q1", models.Answer{Bool: boolPtr(false)}))
	require.NoError(t, sess.SetAnswer("q2", models.Answer{Bool: boolPtr(false)}))

	result, err := sess.Submit(context.Background(), nil)
	require.NoError(t, err)
	require.False(t, result.Passed)
	assert.True(t, sess.CanRetry())

	require.NoError(t, sess.Retry())
	assert.Equal(t, StatusInProgress, sess.Status)
	assert.Nil(t, sess.Result)
	for id, answer := range sess.Answers {
		assert.False(t, answer.IsAnswered(models.TrueFalse), "answer %s should be reset", id)
	}
}

func TestSession_RetryAfterPassRejected(t *testing.T) {
	sess := New(twoQuestionDefinition())
	require.NoError(t, sess.Start())
	require.NoError(t, sess.SetAnswer("q1", models.Answer{Bool: boolPtr(true)}))
	require.NoError(t, sess.SetAnswer("q2", models.Answer{Bool: boolPtr(true)}))

	_, err := sess.Submit(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, sess.CanRetry())
	assert.ErrorIs(t, sess.Retry(), ErrRetryAfterPass)
}

func TestSession_CompletionSignaledAtMostOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("SignaledOnPass", func(t *testing.T) {
		notifier := &countingNotifier{}
		sess := New(twoQuestionDefinition())
		require.NoError(t, sess.Start())
		require.NoError(t, sess.SetAnswer("q1", models.Answer{Bool: boolPtr(true)}))
		require.NoError(t, sess.SetAnswer("q2", models.Answer{Bool: boolPtr(true)}))

		_, err := sess.Submit(ctx, notifier)
		require.NoError(t, err)
		assert.Equal(t, 1, notifier.calls)
		assert.True(t, sess.CompletionSignaled)
	})

	t.Run("NotSignaledOnFail", func(t *testing.T) {
		notifier := &countingNotifier{}
		sess := New(twoQuestionDefinition())
		require.NoError(t, sess.Start())

		_, err := sess.Submit(ctx, notifier)
		require.NoError(t, err)
		assert.Equal(t, 0, notifier.calls)
		assert.False(t, sess.CompletionSignaled)
	})

	t.Run("FailThenPassSignalsOnce", func(t *testing.T) {
		notifier := &countingNotifier{}
		sess := New(twoQuestionDefinition())
		require.NoError(t, sess.Start())

		_, err := sess.Submit(ctx, notifier)
		require.NoError(t, err)
		require.NoError(t, sess.Retry())
		require.NoError(t, sess.SetAnswer("q1", models.Answer{Bool: boolPtr(true)}))
		require.NoError(t, sess.SetAnswer("q2", models.Answer{Bool: boolPtr(true)}))

		_, err = sess.Submit(ctx, notifier)
		require.NoError(t, err)
		assert.Equal(t, 1, notifier.calls)
	})

	t.Run("SignalGuardSurvivesSerialization", func(t *testing.T) {
		notifier := &countingNotifier{}
		sess := New(twoQuestionDefinition())
		require.NoError(t, sess.Start())
		require.NoError(t, sess.SetAnswer("q1", models.Answer{Bool: boolPtr(true)}))
		require.NoError(t, sess.SetAnswer("q2", models.Answer{Bool: boolPtr(true)}))
		_, err := sess.Submit(ctx, notifier)
		require.NoError(t, err)

		data, err := json.Marshal(sess)
		require.NoError(t, err)
		var restored Session
		require.NoError(t, json.Unmarshal(data, &restored))
		assert.True(t, restored.CompletionSignaled)
		assert.Equal(t, StatusSubmitted, restored.Status)
	})
}

func TestLoad(t *testing.T) {
	t.Run("ValidDefinition", func(t *testing.T) {
		blob, err := json.Marshal(twoQuestionDefinition())
		require.NoError(t, err)

		sess := Load(blob)
		assert.False(t, sess.IsEmpty())
		require.NoError(t, sess.Start())
		assert.Len(t, sess.Answers, 2)
	})

	t.Run("NullQuestionEntrySurvivesStart", func(t *testing.T) {
		sess := Load([]byte(`{
			"questions": [null, {"id": "q1", "type": "true_false", "prompt": "2+2=4?", "points": 1, "correct_bool": true}],
			"settings": {"passing_score": 100}
		}`))
		require.NoError(t, sess.Start())
		require.Len(t, sess.Answers, 1)

		correct := true
		require.NoError(t, sess.SetAnswer("q1", models.Answer{Bool: &correct}))
		result, err := sess.Submit(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 100, result.Percentage)
	})

	t.Run("MalformedBlobYieldsEmptySession", func(t *testing.T) {
		sess := Load([]byte(`{not json`))
		assert.True(t, sess.IsEmpty())

		// The empty session still walks the full lifecycle and scores zero.
		require.NoError(t, sess.Start())
		result, err := sess.Submit(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, result.TotalPoints)
		assert.Equal(t, 0, result.Percentage)
	})
}

func TestSession_View(t *testing.T) {
	ctx := context.Background()

	submitFailing := func(t *testing.T, settings func(*models.QuizSettings)) *Session {
		def := twoQuestionDefinition()
		if settings != nil {
			settings(&def.Settings)
		}
		sess := New(def)
		require.NoError(t, sess.Start())
		_, err := sess.Submit(ctx, nil)
		require.NoError(t, err)
		return sess
	}

	t.Run("BeforeSubmit", func(t *testing.T) {
		sess := New(twoQuestionDefinition())
		_, err := sess.View()
		assert.ErrorIs(t, err, ErrNotSubmitted)
	})

	t.Run("FullDisclosure", func(t *testing.T) {
		sess := submitFailing(t, nil)
		view, err := sess.View()
		require.NoError(t, err)

		assert.False(t, view.Passed)
		assert.True(t, view.RetryAllowed)
		require.NotNil(t, view.Percentage)
		assert.Equal(t, 0, *view.Percentage)
		require.Len(t, view.Review, 2)
		assert.Equal(t, "q1", view.Review[0].QuestionID)
		require.NotNil(t, view.Review[0].CorrectAnswer)
		assert.Equal(t, true, *view.Review[0].CorrectAnswer.Bool)
	})

	t.Run("ScoresHiddenWithoutShowResults", func(t *testing.T) {
		sess := submitFailing(t, func(s *models.QuizSettings) {
			s.ShowResults = false
		})
		view, err := sess.View()
		require.NoError(t, err)

		assert.False(t, view.Passed)
		assert.True(t, view.RetryAllowed)
		assert.Nil(t, view.Percentage)
		assert.Nil(t, view.EarnedPoints)
		assert.Nil(t, view.TotalPoints)
		assert.Nil(t, view.Review)
	})

	t.Run("ReviewHiddenWithoutShowCorrectAnswers", func(t *testing.T) {
		sess := submitFailing(t, func(s *models.QuizSettings) {
			s.ShowCorrectAnswers = false
		})
		view, err := sess.View()
		require.NoError(t, err)

		require.NotNil(t, view.Percentage)
		assert.Nil(t, view.Review)
	})
}

func TestSession_RoundTripKeepsPresentation(t *testing.T) {
	def := twoQuestionDefinition()
	def.Settings.ShuffleQuestions = true

	sess := New(def)
	require.NoError(t, sess.Start())
	drawn := sess.Presentation.QuestionOrder

	data, err := json.Marshal(sess)
	require.NoError(t, err)
	var restored Session
	require.NoError(t, json.Unmarshal(data, &restored))

	// The stored draw replays identically; no re-shuffle on reload.
	assert.Equal(t, drawn, restored.Presentation.QuestionOrder)
	assert.Equal(t, StatusInProgress, restored.Status)
}
