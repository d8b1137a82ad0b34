package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizSettings controls presentation and grading policy for a quiz.
type QuizSettings struct {
	ShuffleQuestions   bool `json:"shuffle_questions"`
	ShuffleOptions     bool `json:"shuffle_options"`
	ShowResults        bool `json:"show_results"`
	ShowCorrectAnswers bool `json:"show_correct_answers"`
	PassingScore       int  `json:"passing_score" validate:"min=0,max=100"`
}

// DefaultQuizSettings mirrors the authoring defaults.
func DefaultQuizSettings() QuizSettings {
	return QuizSettings{
		ShowResults:        true,
		ShowCorrectAnswers: true,
		PassingScore:       60,
	}
}

// QuizDefinition is the authored specification of one assessment: the
// questions in canonical order plus the grading/presentation settings.
// Attempts receive it as an immutable snapshot; nothing in the engine
// mutates a definition after it has been handed to a session.
type QuizDefinition struct {
	Questions []*Question  `json:"questions"`
	Settings  QuizSettings `json:"settings"`
}

// TotalPoints sums the point weight of every question.
func (d *QuizDefinition) TotalPoints() int {
	total := 0
	for _, q := range d.Questions {
		total += q.Points
	}
	return total
}

// QuestionByID resolves a question by its stable id, or nil.
func (d *QuizDefinition) QuestionByID(id string) *Question {
	for _, q := range d.Questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// ReorderQuestions permutes the canonical question order to match the given
// id sequence. Ids missing from order keep their relative position at the
// end; unknown ids are ignored. Identity and scores are unaffected.
func (d *QuizDefinition) ReorderQuestions(order []string) {
	index := make(map[string]int, len(order))
	for i, id := range order {
		index[id] = i
	}
	reordered := make([]*Question, 0, len(d.Questions))
	var rest []*Question
	for _, q := range d.Questions {
		if _, ok := index[q.ID]; !ok {
			rest = append(rest, q)
		}
	}
	for _, id := range order {
		if q := d.QuestionByID(id); q != nil {
			reordered = append(reordered, q)
		}
	}
	d.Questions = append(reordered, rest...)
}

// RemoveQuestion deletes the question with the given id, if present.
func (d *QuizDefinition) RemoveQuestion(id string) {
	for i, q := range d.Questions {
		if q.ID == id {
			d.Questions = append(d.Questions[:i], d.Questions[i+1:]...)
			return
		}
	}
}

// ParseQuizDefinition decodes a persisted definition blob. Malformed content
// (invalid JSON, or a document without questions) degrades to an empty quiz
// rather than an error, so a broken lesson never takes down its host: the
// session built on top reports "no questions configured" and scores zero.
// Null entries inside the questions array are dropped, and a document that
// omits the settings object keeps the authoring defaults.
func ParseQuizDefinition(data []byte) *QuizDefinition {
	def := &QuizDefinition{Settings: DefaultQuizSettings()}
	if len(data) == 0 {
		return def
	}
	var decoded struct {
		Questions []*Question   `json:"questions"`
		Settings  *QuizSettings `json:"settings"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return def
	}
	if decoded.Questions == nil {
		return def
	}
	questions := make([]*Question, 0, len(decoded.Questions))
	for _, q := range decoded.Questions {
		if q != nil {
			questions = append(questions, q)
		}
	}
	def.Questions = questions
	if decoded.Settings != nil {
		def.Settings = *decoded.Settings
	}
	return def
}

// ===== PERSISTENCE RECORD =====

// Quiz is the stored form of a definition: row metadata plus the definition
// serialized as a JSON document. The engine itself only ever consumes the
// decoded QuizDefinition; the surrounding service owns this record.
type Quiz struct {
	ID          string         `json:"id" gorm:"primaryKey;size:36"`
	CourseID    string         `json:"course_id" gorm:"size:36;index"`
	LessonID    string         `json:"lesson_id" gorm:"size:36;index"`
	Title       string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string        `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Definition  datatypes.JSON `json:"definition" gorm:"type:jsonb"`

	CreatedBy string         `json:"created_by" gorm:"size:36;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Version int `json:"version" gorm:"default:1"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// DecodeDefinition decodes the stored document with the same lenient
// semantics as ParseQuizDefinition.
func (q *Quiz) DecodeDefinition() *QuizDefinition {
	return ParseQuizDefinition(q.Definition)
}

// EncodeDefinition replaces the stored document.
func (q *Quiz) EncodeDefinition(def *QuizDefinition) error {
	data, err := json.Marshal(def)
	if err != nil {
		return err
	}
	q.Definition = data
	return nil
}
