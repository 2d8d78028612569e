package timeoffRepo

import (
	"context"
	"fmt"
	"time"

	"agendly/database"
	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTimeOffRepo implements TimeOffRepository using MongoDB.
type MongoTimeOffRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeOffRepo creates a TimeOffRepository backed by the "timeoff"
// collection.
func NewMongoTimeOffRepo() TimeOffRepository {
	return &MongoTimeOffRepo{coll: database.Collection("timeoff")}
}

func (r *MongoTimeOffRepo) ListForDate(ctx context.Context, owner, professionalID, date string) ([]models.TimeOff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"owner": owner,
		"date":  date,
		"$or": []bson.M{
			{"professionalId": bson.M{"$exists": false}},
			{"professionalId": ""},
			{"professionalId": professionalID},
		},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list time off for owner %s on %s: %w", owner, date, err)
	}
	defer cursor.Close(ctx)

	var records []models.TimeOff
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode time off records: %w", err)
	}
	return records, nil
}
