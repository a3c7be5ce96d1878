package questionnaireResponses

import (
	"context"
	"database/sql"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/queries"
	"mindscreen-service/internal/pkg/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type answerPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewAnswerPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AnswerRepository {
	return &answerPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func scanAnswer(row rowScanner, answer *models.Answer) error {
	return row.Scan(
		&answer.ID,
		&answer.ResponseID,
		&answer.QuestionID,
		&answer.Value,
		&answer.AnsweredAt,
		&answer.CreatedAt,
		&answer.UpdatedAt,
	)
}

func (repo *answerPostgresRepository) FindByResponseID(ctx context.Context, responseID string) ([]models.Answer, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("answerPostgresRepository.FindByResponseID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	rows, err := repo.DB.QueryContext(ctx, queries.GetAnswersByResponseID, responseID)
	if err != nil {
		repo.Log.Error("answerPostgresRepository.FindByResponseID error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	answers := make([]models.Answer, 0)
	for rows.Next() {
		var answer models.Answer
		if err := scanAnswer(rows, &answer); err != nil {
			repo.Log.Error("answerPostgresRepository.FindByResponseID error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	repo.Log.Info("answerPostgresRepository.FindByResponseID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(answers)),
	)
	return answers, nil
}

// FindByResponseIDs groups the answers of many responses by response id.
func (repo *answerPostgresRepository) FindByResponseIDs(ctx context.Context, responseIDs []string) (map[string][]models.Answer, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("answerPostgresRepository.FindByResponseIDs called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(responseIDs)),
	)

	grouped := make(map[string][]models.Answer, len(responseIDs))
	if len(responseIDs) == 0 {
		return grouped, nil
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetAnswersByResponseIDs, pq.Array(responseIDs))
	if err != nil {
		repo.Log.Error("answerPostgresRepository.FindByResponseIDs error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	for rows.Next() {
		var answer models.Answer
		if err := scanAnswer(rows, &answer); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		grouped[answer.ResponseID] = append(grouped[answer.ResponseID], answer)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return grouped, nil
}
