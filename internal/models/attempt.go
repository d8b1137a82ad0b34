package models

// Answer holds one question's submitted answer. The populated field depends
// on the question type: Bool for true_false, Option (selected option id) for
// single_choice, Options (selected option ids) for multiple_choice, Matches
// (pair id -> chosen right-hand value) for match_drag/match_dropdown, Text
// for open_answer. A nil pointer / empty collection means unanswered, which
// grades as a miss, never as an error.
type Answer struct {
	Bool    *bool             `json:"bool,omitempty"`
	Option  *string           `json:"option,omitempty"`
	Options []string          `json:"options,omitempty"`
	Matches map[string]string `json:"matches,omitempty"`
	Text    string            `json:"text,omitempty"`
}

// AnswerState maps question id to that question's answer. Before grading,
// every question in the definition has exactly one entry.
type AnswerState map[string]*Answer

// NewAnswerState builds the empty per-question placeholders for an attempt.
// The placeholder shape follows the question type so in-progress edits only
// ever fill, never reshape, an entry.
func NewAnswerState(def *QuizDefinition) AnswerState {
	state := make(AnswerState, len(def.Questions))
	for _, q := range def.Questions {
		answer := &Answer{}
		switch q.Type {
		case TrueFalse, SingleChoice, OpenAnswer:
			// Nil pointer / empty text already means unanswered.
		case MultipleChoice:
			answer.Options = []string{}
		case MatchDrag, MatchDropdown:
			answer.Matches = make(map[string]string, len(q.Pairs))
		}
		state[q.ID] = answer
	}
	return state
}

// IsAnswered reports whether the answer carries any user input for the
// given question type.
func (a *Answer) IsAnswered(qtype QuestionType) bool {
	if a == nil {
		return false
	}
	switch qtype {
	case TrueFalse:
		return a.Bool != nil
	case SingleChoice:
		return a.Option != nil
	case MultipleChoice:
		return len(a.Options) > 0
	case MatchDrag, MatchDropdown:
		return len(a.Matches) > 0
	case OpenAnswer:
		return a.Text != ""
	}
	return false
}

// QuestionResult is the graded outcome for a single question. EarnedPoints
// is non-negative and never exceeds the question's weight; for matching
// questions it may be fractional (proportional credit).
type QuestionResult struct {
	QuestionID   string  `json:"question_id"`
	Correct      bool    `json:"correct"`
	EarnedPoints float64 `json:"earned_points"`
	MaxPoints    int     `json:"max_points"`
}

// QuizResult is the aggregate graded outcome of one submission. Percentage
// is the only rounded figure; per-question earned points stay exact.
type QuizResult struct {
	TotalPoints     int              `json:"total_points"`
	EarnedPoints    float64          `json:"earned_points"`
	Percentage      int              `json:"percentage"`
	Passed          bool             `json:"passed"`
	QuestionResults []QuestionResult `json:"question_results"`
}
