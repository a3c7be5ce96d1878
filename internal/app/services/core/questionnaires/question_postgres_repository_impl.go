package questionnaires

import (
	"context"
	"database/sql"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/queries"
	"mindscreen-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type questionPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewQuestionPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.QuestionRepository {
	return &questionPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

// FindByQuestionnaireID returns the questions ordered by order_num.
func (repo *questionPostgresRepository) FindByQuestionnaireID(ctx context.Context, questionnaireID string) ([]models.Question, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("questionPostgresRepository.FindByQuestionnaireID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	questions := make([]models.Question, 0)
	if _, err := uuid.Parse(questionnaireID); err != nil {
		return questions, nil
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetQuestionsByQuestionnaireID, questionnaireID)
	if err != nil {
		repo.Log.Error("questionPostgresRepository.FindByQuestionnaireID error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	for rows.Next() {
		var question models.Question
		if err := rows.Scan(
			&question.ID,
			&question.QuestionnaireID,
			&question.Text,
			&question.Type,
			&question.Required,
			&question.OrderNum,
			&question.Options,
			&question.ScoringWeight,
			&question.CreatedAt,
			&question.UpdatedAt,
		); err != nil {
			repo.Log.Error("questionPostgresRepository.FindByQuestionnaireID error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	repo.Log.Info("questionPostgresRepository.FindByQuestionnaireID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(questions)),
	)
	return questions, nil
}
