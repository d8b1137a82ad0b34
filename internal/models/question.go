package models

// QuestionType enumerates the supported question kinds. The set is closed:
// grading and shuffling switch exhaustively over these constants.
type QuestionType string

const (
	TrueFalse      QuestionType = "true_false"
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	MatchDrag      QuestionType = "match_drag"
	MatchDropdown  QuestionType = "match_dropdown"
	OpenAnswer     QuestionType = "open_answer"
)

// AllQuestionTypes lists every supported type, in authoring-menu order.
var AllQuestionTypes = []QuestionType{
	TrueFalse,
	SingleChoice,
	MultipleChoice,
	MatchDrag,
	MatchDropdown,
	OpenAnswer,
}

// IsValid reports whether t is one of the supported question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case TrueFalse, SingleChoice, MultipleChoice, MatchDrag, MatchDropdown, OpenAnswer:
		return true
	}
	return false
}

// IsChoice reports whether the type carries an option list.
func (t QuestionType) IsChoice() bool {
	return t == SingleChoice || t == MultipleChoice
}

// IsMatching reports whether the type carries a pair list. MatchDrag and
// MatchDropdown grade identically; they differ only in interaction affordance.
func (t QuestionType) IsMatching() bool {
	return t == MatchDrag || t == MatchDropdown
}

// ChoiceOption is one selectable option of a single/multiple choice question.
type ChoiceOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// MatchPair is one left/right pairing of a matching question. Right is the
// canonical answer for the pair; presentation may shuffle the right-hand side
// but grading always compares against this field by pair id.
type MatchPair struct {
	ID    string `json:"id"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is the tagged union over the six supported kinds. Exactly one of
// the type-specific payload fields is meaningful, selected by Type:
// CorrectBool for true_false, Options for single/multiple choice, Pairs for
// match_drag/match_dropdown, AcceptedAnswers for open_answer.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type" validate:"required,question_type"`
	Prompt      string       `json:"prompt" validate:"required,min=1,max=2000"`
	Points      int          `json:"points" validate:"required,min=1,max=100"`
	Explanation string       `json:"explanation,omitempty" validate:"omitempty,max=2000"`

	CorrectBool     *bool          `json:"correct_bool,omitempty"`
	Options         []ChoiceOption `json:"options,omitempty"`
	Pairs           []MatchPair    `json:"pairs,omitempty"`
	AcceptedAnswers []string       `json:"accepted_answers,omitempty"`
}

// Structural minimums enforced by authoring operations and the validator.
// The scoring path relies on these to never grade an empty option or pair
// set and to never divide by a zero pair count.
const (
	MinChoiceOptions   = 2
	MaxChoiceOptions   = 10
	MinMatchPairs      = 2
	MaxMatchPairs      = 10
	MinAcceptedAnswers = 1
)

// NewQuestion returns a question of the given type with authoring defaults:
// 1 point, and the smallest payload the type's structural minimum allows.
func NewQuestion(id string, qtype QuestionType) *Question {
	q := &Question{
		ID:     id,
		Type:   qtype,
		Points: 1,
	}
	switch qtype {
	case TrueFalse:
		correct := true
		q.CorrectBool = &correct
	case SingleChoice, MultipleChoice:
		q.Options = []ChoiceOption{
			{ID: id + "-opt-1", Text: "", IsCorrect: qtype == SingleChoice},
			{ID: id + "-opt-2", Text: ""},
		}
	case MatchDrag, MatchDropdown:
		q.Pairs = []MatchPair{
			{ID: id + "-pair-1"},
			{ID: id + "-pair-2"},
		}
	case OpenAnswer:
		// Empty string as placeholder until the author fills it in.
		q.AcceptedAnswers = []string{""}
	}
	return q
}

// ===== AUTHORING OPERATIONS =====
//
// Shrinking operations refuse to drop a payload below its structural minimum.
// The refusal is a silent no-op, not an error: authoring UIs disable the
// action rather than handle a failure.

// AddOption appends an option to a choice question. Returns the new option,
// or nil when the question is not a choice type or is at the option cap.
func (q *Question) AddOption(optionID, text string) *ChoiceOption {
	if !q.Type.IsChoice() || len(q.Options) >= MaxChoiceOptions {
		return nil
	}
	q.Options = append(q.Options, ChoiceOption{ID: optionID, Text: text})
	return &q.Options[len(q.Options)-1]
}

// RemoveOption deletes the option with the given id. No-op when the question
// already holds the minimum number of options or the id is unknown.
func (q *Question) RemoveOption(optionID string) {
	if !q.Type.IsChoice() || len(q.Options) <= MinChoiceOptions {
		return
	}
	for i, opt := range q.Options {
		if opt.ID == optionID {
			q.Options = append(q.Options[:i], q.Options[i+1:]...)
			return
		}
	}
}

// SetOptionCorrect marks an option correct or incorrect. For single_choice,
// marking an option correct clears the flag on every other option so at most
// one is correct at a time.
func (q *Question) SetOptionCorrect(optionID string, correct bool) {
	if !q.Type.IsChoice() {
		return
	}
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			q.Options[i].IsCorrect = correct
		} else if q.Type == SingleChoice && correct {
			q.Options[i].IsCorrect = false
		}
	}
}

// CorrectOptionIDs returns the ids of all options marked correct.
func (q *Question) CorrectOptionIDs() []string {
	ids := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		if opt.IsCorrect {
			ids = append(ids, opt.ID)
		}
	}
	return ids
}

// AddPair appends a pair to a matching question. Returns the new pair, or
// nil when the question is not a matching type or is at the pair cap.
func (q *Question) AddPair(pairID, left, right string) *MatchPair {
	if !q.Type.IsMatching() || len(q.Pairs) >= MaxMatchPairs {
		return nil
	}
	q.Pairs = append(q.Pairs, MatchPair{ID: pairID, Left: left, Right: right})
	return &q.Pairs[len(q.Pairs)-1]
}

// RemovePair deletes the pair with the given id. No-op when the question
// already holds the minimum number of pairs or the id is unknown.
func (q *Question) RemovePair(pairID string) {
	if !q.Type.IsMatching() || len(q.Pairs) <= MinMatchPairs {
		return
	}
	for i, pair := range q.Pairs {
		if pair.ID == pairID {
			q.Pairs = append(q.Pairs[:i], q.Pairs[i+1:]...)
			return
		}
	}
}

// AddAcceptedAnswer appends an accepted answer to an open_answer question.
func (q *Question) AddAcceptedAnswer(answer string) {
	if q.Type != OpenAnswer {
		return
	}
	q.AcceptedAnswers = append(q.AcceptedAnswers, answer)
}

// RemoveAcceptedAnswer deletes the accepted answer at index. No-op when the
// question already holds the minimum number of accepted answers or the index
// is out of range.
func (q *Question) RemoveAcceptedAnswer(index int) {
	if q.Type != OpenAnswer || len(q.AcceptedAnswers) <= MinAcceptedAnswers {
		return
	}
	if index < 0 || index >= len(q.AcceptedAnswers) {
		return
	}
	q.AcceptedAnswers = append(q.AcceptedAnswers[:index], q.AcceptedAnswers[index+1:]...)
}
