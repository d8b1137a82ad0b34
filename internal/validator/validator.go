package validator

import (
	"reflect"
	"strings"

	"github.com/brightpath-lms/quiz-engine/internal/errors"
	"github.com/brightpath-lms/quiz-engine/internal/models"
	"github.com/go-playground/validator/v10"
)

// Use shared validation errors from errors package
type ValidationError = errors.ValidationError
type ValidationErrors = errors.ValidationErrors

// Validator combines struct-tag validation with the per-type question checks.
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		return errors.ToValidationErrors(err)
	}
	return nil
}

// Validate performs complete validation: struct tags first, then the
// structural question rules when a question or definition is involved.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		return err
	}

	switch value := s.(type) {
	case *models.Question:
		if err := v.questionValidator.ValidateQuestion(value); err != nil {
			return errors.NewValidationError("question", err.Error(), nil)
		}
	case *models.QuizDefinition:
		if err := v.questionValidator.ValidateDefinition(value); err != nil {
			return errors.NewValidationError("definition", err.Error(), nil)
		}
	}
	return nil
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", validateQuestionType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).IsValid()
}
