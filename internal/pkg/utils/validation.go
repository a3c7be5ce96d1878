package utils

import (
	"mindscreen-service/internal/app/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("questionnaire_type", validateQuestionnaireType)
	validate.RegisterValidation("scoring_method", validateScoringMethod)
	validate.RegisterValidation("question_type", validateQuestionType)
	validate.RegisterValidation("response_state", validateResponseState)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateQuestionnaireType(fl validator.FieldLevel) bool {
	return models.QuestionnaireType(fl.Field().String()).IsValid()
}

func validateScoringMethod(fl validator.FieldLevel) bool {
	return models.ScoringMethod(fl.Field().String()).IsValid()
}

func validateQuestionType(fl validator.FieldLevel) bool {
	return models.QuestionType(fl.Field().String()).IsValid()
}

func validateResponseState(fl validator.FieldLevel) bool {
	return models.ResponseState(fl.Field().String()).IsValid()
}
