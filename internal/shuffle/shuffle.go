// Package shuffle draws the randomized presentation order for attempts.
// Shuffles only ever touch presentation: grading resolves by stable id, so
// no permutation here can change what counts as correct.
package shuffle

import (
	"math/rand/v2"

	"github.com/brightpath-lms/quiz-engine/internal/models"
)

// Slice returns a uniform random permutation of items as a new slice,
// leaving the caller's canonical order untouched. Each call draws fresh
// entropy; repeated calls are not reproducible.
func Slice[T any](items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Presentation is the drawn display order for one attempt: question ids in
// display order, option ids per choice question, and right-hand values per
// matching question. It is data, not behavior, so a session can persist the
// draw and replay the same presentation across page loads.
type Presentation struct {
	QuestionOrder []string            `json:"question_order"`
	OptionOrder   map[string][]string `json:"option_order,omitempty"`
	RightOrder    map[string][]string `json:"right_order,omitempty"`
}

// Draw builds a presentation for the definition according to its settings.
// With shuffling disabled the canonical order is returned, so callers can
// rely on a presentation always being present.
func Draw(def *models.QuizDefinition) Presentation {
	p := Presentation{
		QuestionOrder: make([]string, 0, len(def.Questions)),
		OptionOrder:   make(map[string][]string),
		RightOrder:    make(map[string][]string),
	}

	for _, q := range def.Questions {
		p.QuestionOrder = append(p.QuestionOrder, q.ID)

		switch q.Type {
		case models.SingleChoice, models.MultipleChoice:
			ids := make([]string, len(q.Options))
			for i, opt := range q.Options {
				ids[i] = opt.ID
			}
			if def.Settings.ShuffleOptions {
				ids = Slice(ids)
			}
			p.OptionOrder[q.ID] = ids
		case models.MatchDrag, models.MatchDropdown:
			rights := make([]string, len(q.Pairs))
			for i, pair := range q.Pairs {
				rights[i] = pair.Right
			}
			if def.Settings.ShuffleOptions {
				rights = Slice(rights)
			}
			p.RightOrder[q.ID] = rights
		case models.TrueFalse, models.OpenAnswer:
			// Nothing to reorder within the question.
		}
	}

	if def.Settings.ShuffleQuestions {
		p.QuestionOrder = Slice(p.QuestionOrder)
	}
	return p
}
