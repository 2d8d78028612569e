package templateRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agendly/database"
	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTemplateRepo implements TemplateRepository using MongoDB.
type MongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo creates a TemplateRepository backed by the "templates"
// collection.
func NewMongoTemplateRepo() TemplateRepository {
	return &MongoTemplateRepo{coll: database.Collection("templates")}
}

func (r *MongoTemplateRepo) GetByID(ctx context.Context, owner, id string) (*models.AvailabilityTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tpl models.AvailabilityTemplate
	filter := bson.M{"owner": owner, "id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&tpl); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch template with id %s: %w", id, err)
	}
	return &tpl, nil
}
