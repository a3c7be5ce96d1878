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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type responsePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewResponsePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.ResponseRepository {
	return &responsePostgresRepository{
		DB:  db,
		Log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResponse(row rowScanner, response *models.Response) error {
	return row.Scan(
		&response.ID,
		&response.QuestionnaireID,
		&response.Respondent.Name,
		&response.Respondent.Email,
		&response.Respondent.Age,
		&response.Respondent.Gender,
		&response.UniqueCode,
		&response.State,
		&response.Score,
		&response.RiskLevel,
		&response.FlaggedForReview,
		&response.CompletedAt,
		&response.ScoredAt,
		&response.Version,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
}

func (repo *responsePostgresRepository) Create(ctx context.Context, response *models.Response) error {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("responsePostgresRepository.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, response.ID),
		zap.String(constvars.LoggingQuestionnaireIDKey, response.QuestionnaireID),
	)

	_, err := repo.DB.ExecContext(ctx, queries.InsertResponse,
		response.ID,
		response.QuestionnaireID,
		response.Respondent.Name,
		response.Respondent.Email,
		response.Respondent.Age,
		response.Respondent.Gender,
		response.UniqueCode,
		response.State,
		response.FlaggedForReview,
		response.Version,
		response.CreatedAt,
	)
	if err != nil {
		repo.Log.Error("responsePostgresRepository.Create error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}

	repo.Log.Info("responsePostgresRepository.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, response.ID),
	)
	return nil
}

func (repo *responsePostgresRepository) FindByID(ctx context.Context, responseID string) (*models.Response, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("responsePostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	if _, err := uuid.Parse(responseID); err != nil {
		return nil, nil
	}
	return repo.findOne(ctx, requestID, "FindByID", queries.GetResponseByID, responseID)
}

func (repo *responsePostgresRepository) FindByUniqueCode(ctx context.Context, uniqueCode string) (*models.Response, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("responsePostgresRepository.FindByUniqueCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUniqueCodeKey, uniqueCode),
	)

	return repo.findOne(ctx, requestID, "FindByUniqueCode", queries.GetResponseByUniqueCode, uniqueCode)
}

func (repo *responsePostgresRepository) findOne(ctx context.Context, requestID, method, query string, arg string) (*models.Response, error) {
	var response models.Response
	err := scanResponse(repo.DB.QueryRowContext(ctx, query, arg), &response)
	if err == sql.ErrNoRows {
		repo.Log.Warn("responsePostgresRepository."+method+" no rows found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, nil
	} else if err != nil {
		repo.Log.Error("responsePostgresRepository."+method+" error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	repo.Log.Info("responsePostgresRepository."+method+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, response.ID),
		zap.String(constvars.LoggingResponseStateKey, string(response.State)),
	)
	return &response, nil
}

func (repo *responsePostgresRepository) FindAll(ctx context.Context, filter models.ResponseFilter) ([]models.Response, int, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("responsePostgresRepository.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	var flagged sql.NullBool
	if filter.Flagged != nil {
		flagged = sql.NullBool{Bool: *filter.Flagged, Valid: true}
	}

	var total int
	err := repo.DB.QueryRowContext(ctx, queries.CountResponses, filter.QuestionnaireID, string(filter.State), flagged).Scan(&total)
	if err != nil {
		repo.Log.Error("responsePostgresRepository.FindAll error counting rows",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetAllResponses, filter.QuestionnaireID, string(filter.State), flagged, filter.Limit, filter.Offset)
	if err != nil {
		repo.Log.Error("responsePostgresRepository.FindAll error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	result, err := repo.collect(rows)
	if err != nil {
		repo.Log.Error("responsePostgresRepository.FindAll error scanning rows",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	repo.Log.Info("responsePostgresRepository.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(result)),
	)
	return result, total, nil
}

func (repo *responsePostgresRepository) FindByState(ctx context.Context, state models.ResponseState, after models.ResponseCursor, limit int) ([]models.Response, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("responsePostgresRepository.FindByState called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseStateKey, string(state)),
	)

	var afterUpdatedAt sql.NullTime
	var afterID sql.NullString
	if !after.IsZero() {
		afterUpdatedAt = sql.NullTime{Time: after.UpdatedAt, Valid: true}
		afterID = sql.NullString{String: after.ID, Valid: true}
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetResponsesByState, state, afterUpdatedAt, afterID, limit)
	if err != nil {
		repo.Log.Error("responsePostgresRepository.FindByState error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	return repo.collect(rows)
}

func (repo *responsePostgresRepository) FindByQuestionnaireID(ctx context.Context, questionnaireID string) ([]models.Response, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("responsePostgresRepository.FindByQuestionnaireID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	if _, err := uuid.Parse(questionnaireID); err != nil {
		return []models.Response{}, nil
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetResponsesByQuestionnaireID, questionnaireID)
	if err != nil {
		repo.Log.Error("responsePostgresRepository.FindByQuestionnaireID error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	return repo.collect(rows)
}

func (repo *responsePostgresRepository) CountByQuestionnaireID(ctx context.Context, questionnaireID string) (int, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("responsePostgresRepository.CountByQuestionnaireID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	if _, err := uuid.Parse(questionnaireID); err != nil {
		return 0, nil
	}

	var count int
	if err := repo.DB.QueryRowContext(ctx, queries.CountResponsesByQuestionnaireID, questionnaireID).Scan(&count); err != nil {
		repo.Log.Error("responsePostgresRepository.CountByQuestionnaireID error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

// Save applies the state of response guarded by its loaded version and
// upserts the given answers in the same transaction.
func (repo *responsePostgresRepository) Save(ctx context.Context, response *models.Response, answers ...models.Answer) error {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("responsePostgresRepository.Save called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, response.ID),
		zap.String(constvars.LoggingResponseStateKey, string(response.State)),
		zap.Int(constvars.LoggingVersionKey, response.Version),
	)

	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		repo.Log.Error("responsePostgresRepository.Save error beginning transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	var version int
	err = tx.QueryRowContext(ctx, queries.UpdateResponse,
		response.State,
		response.Score,
		response.RiskLevel,
		response.FlaggedForReview,
		response.CompletedAt,
		response.ScoredAt,
		response.UpdatedAt,
		response.ID,
		response.Version,
	).Scan(&version)
	if err == sql.ErrNoRows {
		repo.Log.Warn("responsePostgresRepository.Save stale version",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResponseIDKey, response.ID),
			zap.Int(constvars.LoggingVersionKey, response.Version),
		)
		return exceptions.ErrResponseVersionConflict(response.ID, response.Version)
	} else if err != nil {
		repo.Log.Error("responsePostgresRepository.Save error updating response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}

	for _, answer := range answers {
		_, err := tx.ExecContext(ctx, queries.UpsertAnswer,
			answer.ID,
			response.ID,
			answer.QuestionID,
			answer.Value,
			answer.AnsweredAt,
			answer.CreatedAt,
			answer.UpdatedAt,
		)
		if err != nil {
			repo.Log.Error("responsePostgresRepository.Save error upserting answer",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingQuestionIDKey, answer.QuestionID),
				zap.Error(err),
			)
			return exceptions.ErrPostgresDBInsertData(err)
		}
	}

	if err := tx.Commit(); err != nil {
		repo.Log.Error("responsePostgresRepository.Save error committing transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBCommit(err)
	}
	response.Version = version

	repo.Log.Info("responsePostgresRepository.Save succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, response.ID),
		zap.Int(constvars.LoggingVersionKey, version),
	)
	return nil
}

func (repo *responsePostgresRepository) collect(rows *sql.Rows) ([]models.Response, error) {
	result := make([]models.Response, 0)
	for rows.Next() {
		var response models.Response
		if err := scanResponse(rows, &response); err != nil {
			return nil, exceptions.ErrPostgresDBFindData(err)
		}
		result = append(result, response)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return result, nil
}
