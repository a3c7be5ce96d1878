package lifecycle

import (
	"fmt"
	"time"

	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/app/services/core/scoring"
	"mindscreen-service/internal/pkg/exceptions"

	"github.com/google/uuid"
)

const (
	eventRecordAnswer = "record an answer for"
	eventSubmit       = "submit"
	eventScore        = "score"
	eventFlag         = "flag"
	eventReopen       = "reopen"
)

// Controller enforces the response state machine. Every operation works on a
// copy and leaves the given response untouched when it fails.
type Controller struct {
	now   func() time.Time
	newID func() string
}

func NewController() *Controller {
	return &Controller{now: time.Now, newID: uuid.NewString}
}

func NewControllerWithClock(now func() time.Time, newID func() string) *Controller {
	return &Controller{now: now, newID: newID}
}

// RecordAnswer validates rawValue against question and stores it on the
// response, replacing any earlier answer to the same question.
func (c *Controller) RecordAnswer(response *models.Response, question models.Question, rawValue []byte) (*models.Response, error) {
	if response.IsScored() {
		return nil, exceptions.ErrResponseAlreadyScored(response.ID)
	}
	switch response.State {
	case models.ResponseStateDraft, models.ResponseStateInProgress:
	default:
		return nil, exceptions.ErrInvalidTransition(eventRecordAnswer, string(response.State))
	}

	if question.QuestionnaireID != response.QuestionnaireID {
		return nil, exceptions.ErrQuestionNotInQuestionnaire(question.ID, response.QuestionnaireID)
	}

	value, err := models.ParseAnswerValue(question.Type, rawValue)
	if err != nil {
		return nil, exceptions.ErrInvalidAnswerValue(question.ID, err.Error())
	}
	if err := scoring.CheckValue(question, value); err != nil {
		return nil, exceptions.ErrInvalidAnswerValue(question.ID, err.Error())
	}

	now := c.now()
	updated := response.Clone()
	if existing, ok := updated.AnswerFor(question.ID); ok {
		existing.Value = value
		existing.AnsweredAt = now
		existing.SetUpdatedAt(now)
	} else {
		answer := models.Answer{
			ID:         c.newID(),
			ResponseID: response.ID,
			QuestionID: question.ID,
			Value:      value,
			AnsweredAt: now,
		}
		answer.SetCreatedAtUpdatedAt(now)
		updated.Answers = append(updated.Answers, answer)
	}

	updated.State = models.ResponseStateInProgress
	updated.SetUpdatedAt(now)
	return updated, nil
}

// Submit completes the response once every required question has a valid answer.
func (c *Controller) Submit(response *models.Response, questions []models.Question) (*models.Response, error) {
	switch response.State {
	case models.ResponseStateDraft, models.ResponseStateInProgress:
	default:
		return nil, exceptions.ErrInvalidTransition(eventSubmit, string(response.State))
	}

	for _, question := range questions {
		if question.QuestionnaireID != response.QuestionnaireID {
			return nil, exceptions.ErrQuestionNotInQuestionnaire(question.ID, response.QuestionnaireID)
		}
		if !question.Required {
			continue
		}
		answer, ok := response.AnswerFor(question.ID)
		if !ok {
			return nil, exceptions.ErrMissingRequiredAnswer(question.ID)
		}
		if err := scoring.CheckValue(question, answer.Value); err != nil {
			return nil, exceptions.ErrInvalidAnswerValue(question.ID, err.Error())
		}
	}

	now := c.now()
	updated := response.Clone()
	updated.State = models.ResponseStateCompleted
	updated.CompletedAt = &now
	updated.SetUpdatedAt(now)
	return updated, nil
}

// Score runs the scoring engine and risk classifier on a completed response.
// Entering scored with a risk at or above the questionnaire flag level sets
// the review flag; it never clears it.
func (c *Controller) Score(response *models.Response, questionnaire models.Questionnaire, questions []models.Question, answers []models.Answer) (*models.Response, error) {
	if response.IsScored() {
		return nil, exceptions.ErrResponseAlreadyScored(response.ID)
	}
	if response.State != models.ResponseStateCompleted {
		return nil, exceptions.ErrInvalidTransition(eventScore, string(response.State))
	}

	if questionnaire.ID != response.QuestionnaireID {
		return nil, exceptions.ErrInvalidQuestionnaire(fmt.Sprintf("response %s belongs to questionnaire %s", response.ID, response.QuestionnaireID))
	}

	outcome, err := scoring.ComputeScore(questionnaire, questions, answers)
	if err != nil {
		return nil, err
	}
	riskLevel, err := scoring.Classify(outcome.Score, questionnaire.RiskLevels)
	if err != nil {
		return nil, err
	}

	now := c.now()
	updated := response.Clone()
	updated.State = models.ResponseStateScored
	updated.Score = &outcome.Score
	updated.RiskLevel = &riskLevel
	updated.ScoredAt = &now
	if questionnaire.FlagRiskLevel != "" && scoring.MeetsRiskLevel(riskLevel, questionnaire.FlagRiskLevel, questionnaire.RiskLevels) {
		updated.FlaggedForReview = true
	}
	updated.SetUpdatedAt(now)
	return updated, nil
}

// SetFlag toggles the review flag. A draft response cannot be flagged.
func (c *Controller) SetFlag(response *models.Response, flagged bool) (*models.Response, error) {
	if response.State == models.ResponseStateDraft {
		return nil, exceptions.ErrInvalidTransition(eventFlag, string(response.State))
	}

	updated := response.Clone()
	updated.FlaggedForReview = flagged
	updated.SetUpdatedAt(c.now())
	return updated, nil
}

// Reopen moves a completed or scored response back to editing and drops its score.
func (c *Controller) Reopen(response *models.Response) (*models.Response, error) {
	switch response.State {
	case models.ResponseStateCompleted, models.ResponseStateScored:
	default:
		return nil, exceptions.ErrInvalidTransition(eventReopen, string(response.State))
	}

	updated := response.Clone()
	updated.State = models.ResponseStateInProgress
	if len(updated.Answers) == 0 {
		updated.State = models.ResponseStateDraft
	}
	updated.Score = nil
	updated.RiskLevel = nil
	updated.ScoredAt = nil
	updated.CompletedAt = nil
	updated.SetUpdatedAt(c.now())
	return updated, nil
}
