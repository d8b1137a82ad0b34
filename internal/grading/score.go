package grading

import (
	"math"

	"github.com/brightpath-lms/quiz-engine/internal/models"
)

// Score grades every question of the definition against the submitted
// answers and aggregates the result. It is a pure function: identical
// inputs produce identical results, there are no side effects, and it never
// fails: missing or malformed answers grade as zero credit for their
// question, and a quiz with zero questions or zero total points reports
// percentage 0 rather than a division fault.
func Score(def *models.QuizDefinition, answers models.AnswerState) *models.QuizResult {
	result := &models.QuizResult{
		QuestionResults: make([]models.QuestionResult, 0, len(def.Questions)),
	}

	for _, q := range def.Questions {
		qr := scoreQuestion(q, answers[q.ID])
		result.TotalPoints += q.Points
		result.EarnedPoints += qr.EarnedPoints
		result.QuestionResults = append(result.QuestionResults, qr)
	}

	if result.TotalPoints > 0 {
		result.Percentage = int(math.Round(100 * result.EarnedPoints / float64(result.TotalPoints)))
	}
	result.Passed = result.Percentage >= def.Settings.PassingScore

	return result
}

// scoreQuestion applies the grading policy for the question's type. The
// switch is exhaustive over the closed QuestionType set; an unknown type
// grades as zero.
func scoreQuestion(q *models.Question, answer *models.Answer) models.QuestionResult {
	qr := models.QuestionResult{
		QuestionID: q.ID,
		MaxPoints:  q.Points,
	}
	if answer == nil {
		return qr
	}

	switch q.Type {
	case models.TrueFalse:
		qr.Correct = gradeTrueFalse(q, answer)
	case models.SingleChoice:
		qr.Correct = gradeSingleChoice(q, answer)
	case models.MultipleChoice:
		qr.Correct = gradeMultipleChoice(q, answer)
	case models.MatchDrag, models.MatchDropdown:
		// Matching is the one type with partial credit; it sets earned
		// points itself instead of the all-or-nothing path below.
		correctPairs, totalPairs := gradeMatching(q, answer)
		qr.Correct = totalPairs > 0 && correctPairs == totalPairs
		if totalPairs > 0 {
			qr.EarnedPoints = float64(correctPairs) / float64(totalPairs) * float64(q.Points)
		}
		return qr
	case models.OpenAnswer:
		qr.Correct = gradeOpenAnswer(q, answer)
	}

	if qr.Correct {
		qr.EarnedPoints = float64(q.Points)
	}
	return qr
}

func gradeTrueFalse(q *models.Question, answer *models.Answer) bool {
	return q.CorrectBool != nil && answer.Bool != nil && *answer.Bool == *q.CorrectBool
}

func gradeSingleChoice(q *models.Question, answer *models.Answer) bool {
	if answer.Option == nil {
		return false
	}
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt.ID == *answer.Option
		}
	}
	return false
}

// gradeMultipleChoice compares the selected set against the correct set,
// order-independent. Any mismatch (a missed correct option or an included
// incorrect one) scores zero. No partial credit here, unlike matching
// questions.
func gradeMultipleChoice(q *models.Question, answer *models.Answer) bool {
	correct := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct[opt.ID] = true
		}
	}
	if len(correct) == 0 || len(answer.Options) != len(correct) {
		return false
	}
	seen := make(map[string]bool, len(answer.Options))
	for _, id := range answer.Options {
		if !correct[id] || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// gradeMatching counts pairs whose chosen right-hand value equals the
// canonical one, resolved by pair id.
func gradeMatching(q *models.Question, answer *models.Answer) (correctPairs, totalPairs int) {
	totalPairs = len(q.Pairs)
	for _, pair := range q.Pairs {
		if answer.Matches[pair.ID] == pair.Right {
			correctPairs++
		}
	}
	return correctPairs, totalPairs
}

func gradeOpenAnswer(q *models.Question, answer *models.Answer) bool {
	if answer.Text == "" {
		return false
	}
	normalized := Normalize(answer.Text)
	for _, accepted := range q.AcceptedAnswers {
		if accepted != "" && Normalize(accepted) == normalized {
			return true
		}
	}
	return false
}
