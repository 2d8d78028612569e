package assignmentRepo

import (
	"context"
	"fmt"
	"time"

	"agendly/database"
	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAssignmentRepo implements AssignmentRepository using MongoDB.
type MongoAssignmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAssignmentRepo creates an AssignmentRepository backed by the
// "assignments" collection.
func NewMongoAssignmentRepo() AssignmentRepository {
	return &MongoAssignmentRepo{coll: database.Collection("assignments")}
}

func (r *MongoAssignmentRepo) ListCovering(ctx context.Context, owner, professionalID, date string) ([]models.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// ISO date strings compare lexicographically, so range checks work on the
	// raw strings. An absent or empty endDate means open-ended.
	filter := bson.M{
		"owner":          owner,
		"professionalId": professionalID,
		"startDate":      bson.M{"$lte": date},
		"$or": []bson.M{
			{"endDate": bson.M{"$exists": false}},
			{"endDate": ""},
			{"endDate": bson.M{"$gte": date}},
		},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for professional %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	var assignments []models.Assignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("failed to decode assignments: %w", err)
	}
	return assignments, nil
}
