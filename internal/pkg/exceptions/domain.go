package exceptions

import (
	"fmt"

	"mindscreen-service/internal/pkg/constvars"
)

type ErrorKind string

const (
	KindLifecycle  ErrorKind = "lifecycle"
	KindValidation ErrorKind = "validation"
	KindScoring    ErrorKind = "scoring"
	KindResource   ErrorKind = "resource"
)

type ErrorCode string

const (
	CodeInvalidTransition       ErrorCode = "INVALID_TRANSITION"
	CodeResponseAlreadyScored   ErrorCode = "RESPONSE_ALREADY_SCORED"
	CodeResponseLocked          ErrorCode = "RESPONSE_LOCKED"
	CodeResponseVersionConflict ErrorCode = "RESPONSE_VERSION_CONFLICT"

	CodeInvalidAnswerValue         ErrorCode = "INVALID_ANSWER_VALUE"
	CodeMissingRequiredAnswer      ErrorCode = "MISSING_REQUIRED_ANSWER"
	CodeQuestionNotInQuestionnaire ErrorCode = "QUESTION_NOT_IN_QUESTIONNAIRE"
	CodeInvalidQuestionnaire       ErrorCode = "INVALID_QUESTIONNAIRE"

	CodeUnsupportedScoringMethod ErrorCode = "UNSUPPORTED_SCORING_METHOD"
	CodeScoreBelowAllThresholds  ErrorCode = "SCORE_BELOW_ALL_THRESHOLDS"
	CodeDuplicateThreshold       ErrorCode = "DUPLICATE_THRESHOLD"
	CodeThresholdsNotAscending   ErrorCode = "THRESHOLDS_NOT_ASCENDING"

	CodeNotFound                  ErrorCode = "NOT_FOUND"
	CodeQuestionnaireHasResponses ErrorCode = "QUESTIONNAIRE_HAS_RESPONSES"
	CodeInvalidDistributionLink   ErrorCode = "INVALID_DISTRIBUTION_LINK"
)

var errorKinds = map[ErrorCode]ErrorKind{
	CodeInvalidTransition:          KindLifecycle,
	CodeResponseAlreadyScored:      KindLifecycle,
	CodeResponseLocked:             KindLifecycle,
	CodeResponseVersionConflict:    KindLifecycle,
	CodeInvalidAnswerValue:         KindValidation,
	CodeMissingRequiredAnswer:      KindValidation,
	CodeQuestionNotInQuestionnaire: KindValidation,
	CodeInvalidQuestionnaire:       KindValidation,
	CodeUnsupportedScoringMethod:   KindScoring,
	CodeScoreBelowAllThresholds:    KindScoring,
	CodeDuplicateThreshold:         KindScoring,
	CodeThresholdsNotAscending:     KindScoring,
	CodeNotFound:                   KindResource,
	CodeQuestionnaireHasResponses:  KindResource,
	CodeInvalidDistributionLink:    KindResource,
}

func KindOf(code ErrorCode) ErrorKind {
	return errorKinds[code]
}

var (
	// Lifecycle
	ErrInvalidTransition = func(event, state string) *CustomError {
		return buildDomainError(CodeInvalidTransition, constvars.StatusConflict, constvars.ErrClientInvalidTransition, fmt.Sprintf(constvars.ErrDevInvalidTransition, event, state))
	}
	ErrResponseAlreadyScored = func(responseID string) *CustomError {
		return buildDomainError(CodeResponseAlreadyScored, constvars.StatusConflict, constvars.ErrClientResponseAlreadyScored, fmt.Sprintf(constvars.ErrDevResponseAlreadyScored, responseID))
	}
	ErrResponseLocked = func(responseID string) *CustomError {
		return buildDomainError(CodeResponseLocked, constvars.StatusConflict, constvars.ErrClientResponseLocked, fmt.Sprintf(constvars.ErrDevResponseLocked, responseID))
	}
	ErrResponseVersionConflict = func(responseID string, version int) *CustomError {
		return buildDomainError(CodeResponseVersionConflict, constvars.StatusConflict, constvars.ErrClientResponseVersionConflict, fmt.Sprintf(constvars.ErrDevResponseVersionConflict, responseID, version))
	}

	// Validation
	ErrInvalidAnswerValue = func(questionID, reason string) *CustomError {
		return buildDomainError(CodeInvalidAnswerValue, constvars.StatusUnprocessableEntity, constvars.ErrClientInvalidAnswerValue, fmt.Sprintf(constvars.ErrDevInvalidAnswerValue, questionID, reason))
	}
	ErrMissingRequiredAnswer = func(questionID string) *CustomError {
		return buildDomainError(CodeMissingRequiredAnswer, constvars.StatusUnprocessableEntity, constvars.ErrClientMissingRequiredAnswer, fmt.Sprintf(constvars.ErrDevMissingRequiredAnswer, questionID))
	}
	ErrQuestionNotInQuestionnaire = func(questionID, questionnaireID string) *CustomError {
		return buildDomainError(CodeQuestionNotInQuestionnaire, constvars.StatusUnprocessableEntity, constvars.ErrClientQuestionNotInQuestionnaire, fmt.Sprintf(constvars.ErrDevQuestionNotInQuestionnaire, questionID, questionnaireID))
	}
	ErrInvalidQuestionnaire = func(reason string) *CustomError {
		return buildDomainError(CodeInvalidQuestionnaire, constvars.StatusBadRequest, constvars.ErrClientInvalidQuestionnaire, fmt.Sprintf(constvars.ErrDevInvalidQuestionnaire, reason))
	}

	// Scoring
	ErrUnsupportedScoringMethod = func(method string) *CustomError {
		return buildDomainError(CodeUnsupportedScoringMethod, constvars.StatusUnprocessableEntity, constvars.ErrClientUnsupportedScoringMethod, fmt.Sprintf(constvars.ErrDevUnsupportedScoringMethod, method))
	}
	ErrScoreBelowAllThresholds = func(score string) *CustomError {
		return buildDomainError(CodeScoreBelowAllThresholds, constvars.StatusUnprocessableEntity, constvars.ErrClientScoreBelowAllThresholds, fmt.Sprintf(constvars.ErrDevScoreBelowAllThresholds, score))
	}
	ErrNoThresholdsConfigured = func() *CustomError {
		return buildDomainError(CodeScoreBelowAllThresholds, constvars.StatusUnprocessableEntity, constvars.ErrClientScoreBelowAllThresholds, constvars.ErrDevNoThresholdsConfigured)
	}
	ErrDuplicateThreshold = func(firstLabel, secondLabel, minScore string) *CustomError {
		return buildDomainError(CodeDuplicateThreshold, constvars.StatusUnprocessableEntity, constvars.ErrClientDuplicateThreshold, fmt.Sprintf(constvars.ErrDevDuplicateThreshold, firstLabel, secondLabel, minScore))
	}
	ErrThresholdsNotAscending = func(label, minScore string) *CustomError {
		return buildDomainError(CodeThresholdsNotAscending, constvars.StatusUnprocessableEntity, constvars.ErrClientThresholdsNotAscending, fmt.Sprintf(constvars.ErrDevThresholdsNotAscending, label, minScore))
	}

	// Resource
	ErrResourceNotFound = func(resource, id string) *CustomError {
		return buildDomainError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevResourceNotFound, resource, id))
	}
	ErrResourceNotFoundByCode = func(resource, code string) *CustomError {
		return buildDomainError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf(constvars.ErrDevResourceNotFoundByCode, resource, code))
	}
	ErrUnknownPreset = func(key string) *CustomError {
		return buildDomainError(CodeNotFound, constvars.StatusNotFound, constvars.ErrClientUnknownPreset, fmt.Sprintf(constvars.ErrDevUnknownPreset, key))
	}
	ErrQuestionnaireHasResponses = func(questionnaireID string, count int) *CustomError {
		return buildDomainError(CodeQuestionnaireHasResponses, constvars.StatusConflict, constvars.ErrClientQuestionnaireHasResponses, fmt.Sprintf(constvars.ErrDevQuestionnaireHasResponses, questionnaireID, count))
	}
	ErrInvalidDistributionLink = func(err error) *CustomError {
		customErr := buildDomainError(CodeInvalidDistributionLink, constvars.StatusUnauthorized, constvars.ErrClientInvalidDistributionLink, constvars.ErrDevDistributionTokenInvalid)
		customErr.Err = err
		return customErr
	}
)
