package analyses

import (
	"context"

	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/app/models"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/exceptions"
	"mindscreen-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type analysisMongoRepository struct {
	Collection *mongo.Collection
	Log        *zap.Logger
}

func NewAnalysisMongoRepository(db *mongo.Database, logger *zap.Logger) contracts.AnalysisRepository {
	return &analysisMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAnalyses),
		Log:        logger,
	}
}

// Upsert replaces the payload stored for the response. received_at keeps the
// time of the first delivery.
func (repo *analysisMongoRepository) Upsert(ctx context.Context, analysis *models.Analysis) error {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("analysisMongoRepository.Upsert called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, analysis.ResponseID),
	)

	update := bson.M{
		"$set": bson.M{
			"payload":    analysis.Payload,
			"updated_at": analysis.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"received_at": analysis.ReceivedAt,
		},
	}
	_, err := repo.Collection.UpdateOne(ctx, bson.M{"_id": analysis.ResponseID}, update, options.Update().SetUpsert(true))
	if err != nil {
		repo.Log.Error("analysisMongoRepository.Upsert error updating document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	repo.Log.Info("analysisMongoRepository.Upsert succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, analysis.ResponseID),
	)
	return nil
}

func (repo *analysisMongoRepository) FindByResponseID(ctx context.Context, responseID string) (*models.Analysis, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("analysisMongoRepository.FindByResponseID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResponseIDKey, responseID),
	)

	var analysis models.Analysis
	err := repo.Collection.FindOne(ctx, bson.M{"_id": responseID}).Decode(&analysis)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		repo.Log.Error("analysisMongoRepository.FindByResponseID error finding document",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &analysis, nil
}
