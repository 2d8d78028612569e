package professionalRepo

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

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo creates a ProfessionalRepository backed by the
// "professionals" collection.
func NewMongoProfessionalRepo() ProfessionalRepository {
	return &MongoProfessionalRepo{coll: database.Collection("professionals")}
}

func (r *MongoProfessionalRepo) GetByID(ctx context.Context, owner, id string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var prof models.Professional
	filter := bson.M{"owner": owner, "id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&prof); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch professional with id %s: %w", id, err)
	}
	return &prof, nil
}

func (r *MongoProfessionalRepo) ListActive(ctx context.Context, owner string) ([]models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"owner": owner, "active": true}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals for owner %s: %w", owner, err)
	}
	defer cursor.Close(ctx)

	var professionals []models.Professional
	if err := cursor.All(ctx, &professionals); err != nil {
		return nil, fmt.Errorf("failed to decode professionals: %w", err)
	}
	return professionals, nil
}
