package models

import (
	"github.com/goccy/go-json"

	"mindscreen-service/internal/pkg/dto/responses"
)

func (q Question) ConvertIntoResponse() responses.Question {
	options := make([]responses.QuestionOption, len(q.Options))
	for i, option := range q.Options {
		options[i] = responses.QuestionOption{Value: option.Value, Label: option.Label}
	}
	return responses.Question{
		ID:            q.ID,
		Text:          q.Text,
		Type:          string(q.Type),
		Required:      q.Required,
		OrderNum:      q.OrderNum,
		Options:       options,
		ScoringWeight: q.ScoringWeight,
	}
}

func (q Questionnaire) ConvertIntoResponse() responses.Questionnaire {
	riskLevels := make([]responses.RiskLevel, len(q.RiskLevels))
	for i, threshold := range q.RiskLevels {
		riskLevels[i] = responses.RiskLevel{Label: threshold.Label, MinScore: threshold.MinScore}
	}

	var questions []responses.Question
	for _, question := range q.Questions {
		questions = append(questions, question.ConvertIntoResponse())
	}

	return responses.Questionnaire{
		ID:             q.ID,
		Title:          q.Title,
		Description:    q.Description,
		Type:           string(q.Type),
		ScoringMethod:  string(q.ScoringMethod),
		RiskLevels:     riskLevels,
		MaxScore:       q.MaxScore,
		PassingScore:   q.PassingScore,
		FlagRiskLevel:  q.FlagRiskLevel,
		ScorePrecision: q.ScorePrecision,
		OrganizationID: q.OrganizationID,
		Questions:      questions,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func (a Answer) ConvertIntoResponse() responses.Answer {
	value, _ := json.Marshal(a.Value.Raw())
	return responses.Answer{
		QuestionID: a.QuestionID,
		Kind:       string(a.Value.Kind),
		Value:      value,
		AnsweredAt: a.AnsweredAt,
	}
}

func convertAnswers(answers []Answer) []responses.Answer {
	converted := make([]responses.Answer, len(answers))
	for i, answer := range answers {
		converted[i] = answer.ConvertIntoResponse()
	}
	return converted
}

func (r Response) ConvertIntoResponse() responses.Response {
	return responses.Response{
		ID:              r.ID,
		QuestionnaireID: r.QuestionnaireID,
		Respondent: responses.Respondent{
			Name:   r.Respondent.Name,
			Email:  r.Respondent.Email,
			Age:    r.Respondent.Age,
			Gender: r.Respondent.Gender,
		},
		UniqueCode:       r.UniqueCode,
		State:            string(r.State),
		Score:            r.Score,
		RiskLevel:        r.RiskLevel,
		FlaggedForReview: r.FlaggedForReview,
		CompletedAt:      r.CompletedAt,
		ScoredAt:         r.ScoredAt,
		Version:          r.Version,
		Answers:          convertAnswers(r.Answers),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func (r Response) ConvertIntoPublicResponse(questionnaire Questionnaire) responses.PublicResponse {
	questions := make([]responses.Question, len(questionnaire.Questions))
	for i, question := range questionnaire.Questions {
		questions[i] = question.ConvertIntoResponse()
	}
	return responses.PublicResponse{
		UniqueCode:      r.UniqueCode,
		State:           string(r.State),
		QuestionnaireID: r.QuestionnaireID,
		Title:           questionnaire.Title,
		Description:     questionnaire.Description,
		Questions:       questions,
		Answers:         convertAnswers(r.Answers),
		CompletedAt:     r.CompletedAt,
	}
}

func (a Analysis) ConvertIntoResponse() responses.Analysis {
	return responses.Analysis{
		ResponseID: a.ResponseID,
		Payload:    a.Payload,
		ReceivedAt: a.ReceivedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (s QuestionnaireSummary) ConvertIntoResponse() responses.QuestionnaireSummary {
	byState := make(map[string]int, len(s.ResponsesByState))
	for state, count := range s.ResponsesByState {
		byState[string(state)] = count
	}
	return responses.QuestionnaireSummary{
		QuestionnaireID:  s.QuestionnaireID,
		TotalResponses:   s.TotalResponses,
		ResponsesByState: byState,
		FlaggedResponses: s.FlaggedResponses,
		RiskDistribution: s.RiskDistribution,
		AverageScore:     s.AverageScore,
		GeneratedAt:      s.GeneratedAt,
	}
}
