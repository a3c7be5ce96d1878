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

type questionnairePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewQuestionnairePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.QuestionnaireRepository {
	return &questionnairePostgresRepository{
		DB:  db,
		Log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanQuestionnaire(row rowScanner, questionnaire *models.Questionnaire) error {
	return row.Scan(
		&questionnaire.ID,
		&questionnaire.Title,
		&questionnaire.Description,
		&questionnaire.Type,
		&questionnaire.ScoringMethod,
		&questionnaire.RiskLevels,
		&questionnaire.MaxScore,
		&questionnaire.PassingScore,
		&questionnaire.FlagRiskLevel,
		&questionnaire.ScorePrecision,
		&questionnaire.OrganizationID,
		&questionnaire.CreatedAt,
		&questionnaire.UpdatedAt,
	)
}

// Create inserts the questionnaire and its questions in one transaction.
func (repo *questionnairePostgresRepository) Create(ctx context.Context, questionnaire *models.Questionnaire, questions []models.Question) error {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("questionnairePostgresRepository.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)

	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		repo.Log.Error("questionnairePostgresRepository.Create error beginning transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, queries.InsertQuestionnaire,
		questionnaire.ID,
		questionnaire.Title,
		questionnaire.Description,
		questionnaire.Type,
		questionnaire.ScoringMethod,
		questionnaire.RiskLevels,
		questionnaire.MaxScore,
		questionnaire.PassingScore,
		questionnaire.FlagRiskLevel,
		questionnaire.ScorePrecision,
		questionnaire.OrganizationID,
		questionnaire.CreatedAt,
	)
	if err != nil {
		repo.Log.Error("questionnairePostgresRepository.Create error inserting questionnaire",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBInsertData(err)
	}

	if err := insertQuestions(ctx, tx, questions); err != nil {
		repo.Log.Error("questionnairePostgresRepository.Create error inserting questions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		repo.Log.Error("questionnairePostgresRepository.Create error committing transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBCommit(err)
	}

	repo.Log.Info("questionnairePostgresRepository.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)
	return nil
}

// Update rewrites the questionnaire row and replaces its question set.
func (repo *questionnairePostgresRepository) Update(ctx context.Context, questionnaire *models.Questionnaire, questions []models.Question) error {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("questionnairePostgresRepository.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)

	tx, err := repo.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, queries.UpdateQuestionnaire,
		questionnaire.Title,
		questionnaire.Description,
		questionnaire.Type,
		questionnaire.ScoringMethod,
		questionnaire.RiskLevels,
		questionnaire.MaxScore,
		questionnaire.PassingScore,
		questionnaire.FlagRiskLevel,
		questionnaire.ScorePrecision,
		questionnaire.OrganizationID,
		questionnaire.UpdatedAt,
		questionnaire.ID,
	)
	if err != nil {
		repo.Log.Error("questionnairePostgresRepository.Update error updating questionnaire",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}

	if _, err := tx.ExecContext(ctx, queries.DeleteQuestionsByQuestionnaireID, questionnaire.ID); err != nil {
		repo.Log.Error("questionnairePostgresRepository.Update error deleting questions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBDeleteData(err)
	}

	if err := insertQuestions(ctx, tx, questions); err != nil {
		repo.Log.Error("questionnairePostgresRepository.Update error inserting questions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommit(err)
	}

	repo.Log.Info("questionnairePostgresRepository.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)
	return nil
}

func insertQuestions(ctx context.Context, tx *sql.Tx, questions []models.Question) error {
	for _, question := range questions {
		_, err := tx.ExecContext(ctx, queries.InsertQuestion,
			question.ID,
			question.QuestionnaireID,
			question.Text,
			question.Type,
			question.Required,
			question.OrderNum,
			question.Options,
			question.ScoringWeight,
			question.CreatedAt,
		)
		if err != nil {
			return exceptions.ErrPostgresDBInsertData(err)
		}
	}
	return nil
}

func (repo *questionnairePostgresRepository) FindByID(ctx context.Context, questionnaireID string) (*models.Questionnaire, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("questionnairePostgresRepository.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	if _, err := uuid.Parse(questionnaireID); err != nil {
		return nil, nil
	}

	var questionnaire models.Questionnaire
	err := scanQuestionnaire(repo.DB.QueryRowContext(ctx, queries.GetQuestionnaireByID, questionnaireID), &questionnaire)
	if err == sql.ErrNoRows {
		repo.Log.Warn("questionnairePostgresRepository.FindByID no rows found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
		)
		return nil, nil
	} else if err != nil {
		repo.Log.Error("questionnairePostgresRepository.FindByID error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	repo.Log.Info("questionnairePostgresRepository.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaire.ID),
	)
	return &questionnaire, nil
}

func (repo *questionnairePostgresRepository) FindAll(ctx context.Context, filter models.QuestionnaireFilter) ([]models.Questionnaire, int, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("questionnairePostgresRepository.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	var total int
	err := repo.DB.QueryRowContext(ctx, queries.CountQuestionnaires, string(filter.Type), filter.OrganizationID).Scan(&total)
	if err != nil {
		repo.Log.Error("questionnairePostgresRepository.FindAll error counting rows",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetAllQuestionnaires, string(filter.Type), filter.OrganizationID, filter.Limit, filter.Offset)
	if err != nil {
		repo.Log.Error("questionnairePostgresRepository.FindAll error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	questionnaires := make([]models.Questionnaire, 0)
	for rows.Next() {
		var questionnaire models.Questionnaire
		if err := scanQuestionnaire(rows, &questionnaire); err != nil {
			repo.Log.Error("questionnairePostgresRepository.FindAll error scanning row",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		questionnaires = append(questionnaires, questionnaire)
	}

	if err := rows.Err(); err != nil {
		repo.Log.Error("questionnairePostgresRepository.FindAll rows iteration error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, exceptions.ErrPostgresDBIterateDataset(err)
	}

	repo.Log.Info("questionnairePostgresRepository.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(questionnaires)),
	)
	return questionnaires, total, nil
}

// Delete removes the questionnaire; questions go with it through ON DELETE CASCADE.
func (repo *questionnairePostgresRepository) Delete(ctx context.Context, questionnaireID string) error {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("questionnairePostgresRepository.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQuestionnaireIDKey, questionnaireID),
	)

	if _, err := repo.DB.ExecContext(ctx, queries.DeleteQuestionnaire, questionnaireID); err != nil {
		repo.Log.Error("questionnairePostgresRepository.Delete error executing query",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBDeleteData(err)
	}

	repo.Log.Info("questionnairePostgresRepository.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}
