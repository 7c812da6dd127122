package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/kyc-co/synthforms/internal/logging"
	"github.com/kyc-co/synthforms/internal/models"
	"github.com/kyc-co/synthforms/internal/observability"
	"github.com/kyc-co/synthforms/internal/utils"
)

// FormStore persists generated forms in MongoDB, one collection per document type.
// Writes are upserts keyed by sg_id, so storing a regenerated seed is idempotent.
type FormStore struct {
	database    *mongo.Database
	collections map[models.DocumentType]string
	logger      *logging.SafeLogger
}

// NewFormStore creates a store over database.
func NewFormStore(database *mongo.Database, employeeCollection, counterpartyCollection string, logger *logging.SafeLogger) *FormStore {
	if logger == nil {
		logger = logging.Logger
	}
	return &FormStore{
		database: database,
		collections: map[models.DocumentType]string{
			models.DocumentTypeEmployeeKnowledge:     employeeCollection,
			models.DocumentTypeCounterpartyKnowledge: counterpartyCollection,
		},
		logger: logger,
	}
}

func (s *FormStore) collection(docType models.DocumentType) (*mongo.Collection, error) {
	name, ok := s.collections[docType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownFormType, docType)
	}
	return s.database.Collection(name), nil
}

// EnsureIndexes creates the lookup indexes on every form collection.
func (s *FormStore) EnsureIndexes(ctx context.Context) error {
	for _, docType := range models.DocumentTypes() {
		coll, err := s.collection(docType)
		if err != nil {
			return err
		}

		indexes := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "seed", Value: 1}},
				Options: options.Index().SetName("idx_seed"),
			},
			{
				Keys:    bson.D{{Key: "form_date", Value: -1}},
				Options: options.Index().SetName("idx_form_date"),
			},
		}
		if docType == models.DocumentTypeCounterpartyKnowledge {
			indexes = append(indexes, mongo.IndexModel{
				Keys:    bson.D{{Key: "entity_kind", Value: 1}, {Key: "user_type", Value: 1}},
				Options: options.Index().SetName("idx_entity_kind_user_type"),
			})
		}

		if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
		}
		s.logger.Info("form indexes ensured", zap.String("collection", coll.Name()))
	}
	return nil
}

// Write upserts forms, grouped by collection.
func (s *FormStore) Write(ctx context.Context, forms []models.Form) error {
	grouped := make(map[models.DocumentType][]mongo.WriteModel)
	for _, form := range forms {
		header := form.Header()
		grouped[header.DocumentType] = append(grouped[header.DocumentType],
			mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": header.ID}).
				SetReplacement(form).
				SetUpsert(true),
		)
	}

	for docType, writes := range grouped {
		coll, err := s.collection(docType)
		if err != nil {
			observability.SinkOperations.WithLabelValues("mongo", "error").Inc()
			return err
		}

		opCtx, span, done := utils.TraceDatabaseOperation(ctx, "bulk_write", coll.Name(), len(writes))
		res, err := coll.BulkWrite(opCtx, writes, options.BulkWrite().SetOrdered(false))
		if err != nil {
			utils.RecordErrorInSpan(span, err, nil)
			done()
			observability.SinkOperations.WithLabelValues("mongo", "error").Inc()
			return fmt.Errorf("store %d forms in %s: %w", len(writes), coll.Name(), err)
		}
		done()

		observability.SinkOperations.WithLabelValues("mongo", "ok").Inc()
		s.logger.Debug("stored forms",
			zap.String("collection", coll.Name()),
			zap.Int64("upserted", res.UpsertedCount),
			zap.Int64("replaced", res.ModifiedCount),
		)
	}
	return nil
}
