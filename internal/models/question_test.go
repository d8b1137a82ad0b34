package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionType_IsValid(t *testing.T) {
	for _, qtype := range AllQuestionTypes {
		assert.True(t, qtype.IsValid(), "type %s should be valid", qtype)
	}
	assert.False(t, QuestionType("essay").IsValid())
	assert.False(t, QuestionType("").IsValid())
}

func TestNewQuestion_Defaults(t *testing.T) {
	t.Run("TrueFalse", func(t *testing.T) {
		q := NewQuestion("q1", TrueFalse)
		require.NotNil(t, q.CorrectBool)
		assert.True(t, *q.CorrectBool)
		assert.Equal(t, 1, q.Points)
	})

	t.Run("SingleChoice", func(t *testing.T) {
		q := NewQuestion("q1", SingleChoice)
		require.Len(t, q.Options, MinChoiceOptions)
		assert.True(t, q.Options[0].IsCorrect)
		assert.False(t, q.Options[1].IsCorrect)
	})

	t.Run("MultipleChoice", func(t *testing.T) {
		q := NewQuestion("q1", MultipleChoice)
		require.Len(t, q.Options, MinChoiceOptions)
		assert.Empty(t, q.CorrectOptionIDs())
	})

	t.Run("Matching", func(t *testing.T) {
		q := NewQuestion("q1", MatchDrag)
		assert.Len(t, q.Pairs, MinMatchPairs)
	})

	t.Run("OpenAnswer", func(t *testing.T) {
		q := NewQuestion("q1", OpenAnswer)
		assert.Len(t, q.AcceptedAnswers, MinAcceptedAnswers)
	})
}

func TestQuestion_OptionOperations(t *testing.T) {
	q := NewQuestion("q1", SingleChoice)

	t.Run("AddOption", func(t *testing.T) {
		opt := q.AddOption("q1-opt-3", "Paris")
		require.NotNil(t, opt)
		assert.Equal(t, "Paris", opt.Text)
		assert.Len(t, q.Options, 3)
	})

	t.Run("AddOption_RespectsCap", func(t *testing.T) {
		capped := NewQuestion("q2", MultipleChoice)
		for i := len(capped.Options); i < MaxChoiceOptions; i++ {
			require.NotNil(t, capped.AddOption("extra", ""))
		}
		assert.Nil(t, capped.AddOption("overflow", ""))
		assert.Len(t, capped.Options, MaxChoiceOptions)
	})

	t.Run("AddOption_WrongType", func(t *testing.T) {
		tf := NewQuestion("q3", TrueFalse)
		assert.Nil(t, tf.AddOption("opt", "x"))
	})

	t.Run("RemoveOption", func(t *testing.T) {
		q.RemoveOption("q1-opt-3")
		assert.Len(t, q.Options, 2)
	})

	t.Run("RemoveOption_FloorIsSilentNoop", func(t *testing.T) {
		require.Len(t, q.Options, MinChoiceOptions)
		q.RemoveOption(q.Options[0].ID)
		assert.Len(t, q.Options, MinChoiceOptions)
	})

	t.Run("RemoveOption_UnknownID", func(t *testing.T) {
		q.AddOption("q1-opt-4", "")
		q.RemoveOption("no-such-option")
		assert.Len(t, q.Options, 3)
		q.RemoveOption("q1-opt-4")
	})
}

func TestQuestion_SetOptionCorrect(t *testing.T) {
	t.Run("SingleChoice_ClearsOthers", func(t *testing.T) {
		q := NewQuestion("q1", SingleChoice)
		q.AddOption("q1-opt-3", "")
		q.SetOptionCorrect("q1-opt-3", true)

		ids := q.CorrectOptionIDs()
		require.Len(t, ids, 1)
		assert.Equal(t, "q1-opt-3", ids[0])

		q.SetOptionCorrect("q1-opt-1", true)
		ids = q.CorrectOptionIDs()
		require.Len(t, ids, 1)
		assert.Equal(t, "q1-opt-1", ids[0])
	})

	t.Run("MultipleChoice_AccumulatesFlags", func(t *testing.T) {
		q := NewQuestion("q1", MultipleChoice)
		q.SetOptionCorrect("q1-opt-1", true)
		q.SetOptionCorrect("q1-opt-2", true)
		assert.Len(t, q.CorrectOptionIDs(), 2)

		q.SetOptionCorrect("q1-opt-2", false)
		assert.Equal(t, []string{"q1-opt-1"}, q.CorrectOptionIDs())
	})
}

func TestQuestion_PairOperations(t *testing.T) {
	q := NewQuestion("q1", MatchDropdown)

	pair := q.AddPair("q1-pair-3", "France", "Paris")
	require.NotNil(t, pair)
	assert.Len(t, q.Pairs, 3)

	q.RemovePair("q1-pair-3")
	assert.Len(t, q.Pairs, MinMatchPairs)

	// At the floor, removal is a silent no-op.
	q.RemovePair(q.Pairs[0].ID)
	assert.Len(t, q.Pairs, MinMatchPairs)

	tf := NewQuestion("q2", TrueFalse)
	assert.Nil(t, tf.AddPair("p", "l", "r"))
}

func TestQuestion_AcceptedAnswerOperations(t *testing.T) {
	q := NewQuestion("q1", OpenAnswer)
	q.AcceptedAnswers = []string{"photosynthesis"}

	q.AddAcceptedAnswer("foto synthesis")
	require.Len(t, q.AcceptedAnswers, 2)

	q.RemoveAcceptedAnswer(1)
	assert.Equal(t, []string{"photosynthesis"}, q.AcceptedAnswers)

	// Floor and out-of-range removals are silent no-ops.
	q.RemoveAcceptedAnswer(0)
	assert.Len(t, q.AcceptedAnswers, 1)
	q.AddAcceptedAnswer("second")
	q.RemoveAcceptedAnswer(5)
	assert.Len(t, q.AcceptedAnswers, 2)

	tf := NewQuestion("q2", TrueFalse)
	tf.AddAcceptedAnswer("ignored")
	assert.Empty(t, tf.AcceptedAnswers)
}
