package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinition() *QuizDefinition {
	q1 := NewQuestion("q1", TrueFalse)
	q2 := NewQuestion("q2", SingleChoice)
	q2.Points = 2
	q3 := NewQuestion("q3", OpenAnswer)
	q3.Points = 3
	return &QuizDefinition{
		Questions: []*Question{q1, q2, q3},
		Settings:  DefaultQuizSettings(),
	}
}

func TestQuizDefinition_TotalPoints(t *testing.T) {
	def := testDefinition()
	assert.Equal(t, 6, def.TotalPoints())

	empty := &QuizDefinition{Settings: DefaultQuizSettings()}
	assert.Equal(t, 0, empty.TotalPoints())
}

func TestQuizDefinition_QuestionByID(t *testing.T) {
	def := testDefinition()
	require.NotNil(t, def.QuestionByID("q2"))
	assert.Equal(t, SingleChoice, def.QuestionByID("q2").Type)
	assert.Nil(t, def.QuestionByID("missing"))
}

func TestQuizDefinition_ReorderQuestions(t *testing.T) {
	ids := func(def *QuizDefinition) []string {
		out := make([]string, len(def.Questions))
		for i, q := range def.Questions {
			out[i] = q.ID
		}
		return out
	}

	t.Run("FullPermutation", func(t *testing.T) {
		def := testDefinition()
		def.ReorderQuestions([]string{"q3", "q1", "q2"})
		assert.Equal(t, []string{"q3", "q1", "q2"}, ids(def))
	})

	t.Run("UnknownIDsIgnored", func(t *testing.T) {
		def := testDefinition()
		def.ReorderQuestions([]string{"q2", "ghost", "q1"})
		assert.Equal(t, []string{"q2", "q1", "q3"}, ids(def))
	})

	t.Run("MissingIDsKeepRelativeOrderAtEnd", func(t *testing.T) {
		def := testDefinition()
		def.ReorderQuestions([]string{"q3"})
		assert.Equal(t, []string{"q3", "q1", "q2"}, ids(def))
	})

	t.Run("ScoresUnaffected", func(t *testing.T) {
		def := testDefinition()
		before := def.TotalPoints()
		def.ReorderQuestions([]string{"q2", "q3", "q1"})
		assert.Equal(t, before, def.TotalPoints())
	})
}

func TestQuizDefinition_RemoveQuestion(t *testing.T) {
	def := testDefinition()
	def.RemoveQuestion("q2")
	assert.Len(t, def.Questions, 2)
	assert.Nil(t, def.QuestionByID("q2"))

	def.RemoveQuestion("missing")
	assert.Len(t, def.Questions, 2)
}

func TestParseQuizDefinition(t *testing.T) {
	t.Run("ValidDocument", func(t *testing.T) {
		def := ParseQuizDefinition([]byte(`{
			"questions": [{"id": "q1", "type": "true_false", "prompt": "2+2=4?", "points": 1, "correct_bool": true}],
			"settings": {"passing_score": 80, "show_results": true}
		}`))
		require.Len(t, def.Questions, 1)
		assert.Equal(t, TrueFalse, def.Questions[0].Type)
		assert.Equal(t, 80, def.Settings.PassingScore)
	})

	t.Run("MalformedJSONDegradesToEmpty", func(t *testing.T) {
		def := ParseQuizDefinition([]byte(`{"questions": [`))
		assert.Empty(t, def.Questions)
		assert.Equal(t, DefaultQuizSettings(), def.Settings)
	})

	t.Run("MissingQuestionsDegradesToEmpty", func(t *testing.T) {
		def := ParseQuizDefinition([]byte(`{"settings": {"passing_score": 90}}`))
		assert.Empty(t, def.Questions)
		assert.Equal(t, DefaultQuizSettings(), def.Settings)
	})

	t.Run("NullQuestionEntriesDropped", func(t *testing.T) {
		def := ParseQuizDefinition([]byte(`{
			"questions": [null, {"id": "q1", "type": "true_false", "prompt": "2+2=4?", "points": 1, "correct_bool": true}, null],
			"settings": {"passing_score": 70}
		}`))
		require.Len(t, def.Questions, 1)
		assert.Equal(t, "q1", def.Questions[0].ID)
		assert.Equal(t, 70, def.Settings.PassingScore)
	})

	t.Run("MissingSettingsKeepsDefaults", func(t *testing.T) {
		def := ParseQuizDefinition([]byte(`{
			"questions": [{"id": "q1", "type": "true_false", "prompt": "2+2=4?", "points": 1, "correct_bool": true}]
		}`))
		require.Len(t, def.Questions, 1)
		assert.Equal(t, DefaultQuizSettings(), def.Settings)
	})

	t.Run("EmptyBlob", func(t *testing.T) {
		def := ParseQuizDefinition(nil)
		assert.Empty(t, def.Questions)
		assert.Equal(t, 60, def.Settings.PassingScore)
	})
}

func TestQuiz_DefinitionRoundTrip(t *testing.T) {
	quiz := &Quiz{ID: "quiz-1", Title: "Geography"}
	def := testDefinition()

	require.NoError(t, quiz.EncodeDefinition(def))
	decoded := quiz.DecodeDefinition()

	require.Len(t, decoded.Questions, 3)
	assert.Equal(t, "q2", decoded.Questions[1].ID)
	assert.Equal(t, def.Settings, decoded.Settings)
}

func TestNewAnswerState(t *testing.T) {
	def := &QuizDefinition{
		Questions: []*Question{
			NewQuestion("tf", TrueFalse),
			NewQuestion("mc", MultipleChoice),
			NewQuestion("match", MatchDrag),
			NewQuestion("open", OpenAnswer),
		},
		Settings: DefaultQuizSettings(),
	}

	state := NewAnswerState(def)
	require.Len(t, state, 4)

	assert.Nil(t, state["tf"].Bool)
	assert.NotNil(t, state["mc"].Options)
	assert.Empty(t, state["mc"].Options)
	assert.NotNil(t, state["match"].Matches)
	assert.Empty(t, state["open"].Text)

	for id, q := range map[string]QuestionType{
		"tf": TrueFalse, "mc": MultipleChoice, "match": MatchDrag, "open": OpenAnswer,
	} {
		assert.False(t, state[id].IsAnswered(q), "fresh state for %s should be unanswered", id)
	}
}

func TestAnswer_IsAnswered(t *testing.T) {
	yes := true
	opt := "opt-1"

	cases := []struct {
		name     string
		answer   *Answer
		qtype    QuestionType
		answered bool
	}{
		{"NilAnswer", nil, TrueFalse, false},
		{"BoolSet", &Answer{Bool: &yes}, TrueFalse, true},
		{"OptionSet", &Answer{Option: &opt}, SingleChoice, true},
		{"OptionsEmpty", &Answer{Options: []string{}}, MultipleChoice, false},
		{"OptionsSet", &Answer{Options: []string{"a"}}, MultipleChoice, true},
		{"MatchesSet", &Answer{Matches: map[string]string{"p": "v"}}, MatchDrag, true},
		{"TextEmpty", &Answer{}, OpenAnswer, false},
		{"TextSet", &Answer{Text: "hi"}, OpenAnswer, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.answered, tc.answer.IsAnswered(tc.qtype))
		})
	}
}
