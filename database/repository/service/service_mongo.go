package serviceRepo

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

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a ServiceRepository backed by the "services"
// collection.
func NewMongoServiceRepo() ServiceRepository {
	return &MongoServiceRepo{coll: database.Collection("services")}
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, owner, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	filter := bson.M{"owner": owner, "id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &svc, nil
}
