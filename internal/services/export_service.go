package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/brightpath-lms/quiz-engine/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var exportHeaders = []string{
	"question_id", "question_type", "prompt", "points", "explanation", "answer_key",
}

// ===== EXPORT OPERATIONS =====

func (s *exportService) ExportQuizToExcel(ctx context.Context, quizID string) ([]byte, error) {
	s.logger.Info("Exporting quiz to Excel", "quiz_id", quizID)

	quiz, def, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Questions"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIndex, q := range def.Questions {
		row := exportRow(q)
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIndex+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", rowIndex+2, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Quiz exported to Excel",
		"quiz_id", quiz.ID,
		"questions", len(def.Questions))

	return buf.Bytes(), nil
}

func (s *exportService) ExportQuizToCSV(ctx context.Context, quizID string) ([]byte, error) {
	s.logger.Info("Exporting quiz to CSV", "quiz_id", quizID)

	_, def, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, q := range def.Questions {
		if err := writer.Write(exportRow(q)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *exportService) ExportQuizToJSON(ctx context.Context, quizID string) ([]byte, error) {
	s.logger.Info("Exporting quiz to JSON", "quiz_id", quizID)

	quiz, def, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	payload := struct {
		QuizID     string                 `json:"quiz_id"`
		Title      string                 `json:"title"`
		Definition *models.QuizDefinition `json:"definition"`
	}{
		QuizID:     quiz.ID,
		Title:      quiz.Title,
		Definition: def,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal quiz: %w", err)
	}
	return data, nil
}

// ===== HELPERS =====

func (s *exportService) loadQuiz(ctx context.Context, quizID string) (*models.Quiz, *models.QuizDefinition, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		return nil, nil, wrapStoreError(err, ErrQuizNotFound, "get quiz")
	}
	return quiz, quiz.DecodeDefinition(), nil
}

// exportRow flattens one question into the tabular export shape. The answer
// key column renders the correctness bookkeeping in a readable form per type.
func exportRow(q *models.Question) []string {
	var answerKey string
	switch q.Type {
	case models.TrueFalse:
		if q.CorrectBool != nil {
			answerKey = strconv.FormatBool(*q.CorrectBool)
		}
	case models.SingleChoice, models.MultipleChoice:
		var correct []string
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct = append(correct, opt.Text)
			}
		}
		answerKey = strings.Join(correct, "; ")
	case models.MatchDrag, models.MatchDropdown:
		pairs := make([]string, 0, len(q.Pairs))
		for _, pair := range q.Pairs {
			pairs = append(pairs, pair.Left+" -> "+pair.Right)
		}
		answerKey = strings.Join(pairs, "; ")
	case models.OpenAnswer:
		answerKey = strings.Join(q.AcceptedAnswers, "; ")
	}

	return []string{
		q.ID,
		string(q.Type),
		q.Prompt,
		strconv.Itoa(q.Points),
		q.Explanation,
		answerKey,
	}
}
