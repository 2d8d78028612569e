package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"agendly/database"
	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates an AppointmentRepository backed by the
// "appointments" collection.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: database.Collection("appointments")}
	repo.ensureIndexes()
	return repo
}

// ensureIndexes installs the unique partial index making the idempotency key
// authoritative at the store level, plus the overlap-query index. Failure is
// logged rather than fatal; the repository still functions, with the key
// check degraded to the application-level lookup.
func (r *MongoAppointmentRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "idempotencyKey", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"idempotencyKey": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "professionalId", Value: 1}, {Key: "effectiveStart", Value: 1}},
		},
	})
	if err != nil {
		log.Printf("failed to create appointment indexes: %v", err)
	}
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, owner, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	filter := bson.M{"owner": owner, "id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) GetByIdempotencyKey(ctx context.Context, owner, key string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	filter := bson.M{"owner": owner, "idempotencyKey": key}
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment by idempotency key: %w", err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListOverlapping(ctx context.Context, owner, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := overlapFilter(owner, professionalID, from, to)
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for professional %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return appointments, nil
}

// CreateWithCapacityCheck reserves the slot with an insert-then-verify scheme:
// the document is inserted first, then overlapping confirmed/pending effective
// ranges are recounted. The recount considers only documents ranked below the
// fresh insert's _id, so prior bookings always count against it while racing
// inserts are totally ordered: of two racers contending for the last unit of
// capacity, exactly the lower-ranked one survives and the other is compensated
// with a delete. The window between insert and verify is the only point where
// a transient over-booking can exist before being corrected.
func (r *MongoAppointmentRepo) CreateWithCapacityCheck(ctx context.Context, appt *models.Appointment, capacity int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, appt)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to insert appointment: %w", err)
	}

	filter := overlapFilter(appt.Owner, appt.ProfessionalID, appt.EffectiveStart, appt.EffectiveEnd)
	filter["_id"] = bson.M{"$lt": res.InsertedID}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		// Verification failed; roll the insert back rather than risk leaving
		// an unverified booking behind.
		_, _ = r.coll.DeleteOne(ctx, bson.M{"id": appt.ID})
		return fmt.Errorf("failed to verify capacity for appointment %s: %w", appt.ID, err)
	}

	if count >= int64(capacity) {
		if _, err := r.coll.DeleteOne(ctx, bson.M{"id": appt.ID}); err != nil {
			return fmt.Errorf("failed to roll back over-capacity appointment %s: %w", appt.ID, err)
		}
		return ErrCapacityExceeded
	}
	return nil
}

func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, owner, id string, status models.AppointmentStatus, reason string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{"status": status, "updated_at": now}
	if status == models.StatusCancelled {
		set["cancelReason"] = reason
		set["cancelledAt"] = now
	}

	filter := bson.M{"owner": owner, "id": id}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, owner, id)
}

func (r *MongoAppointmentRepo) ExpireStalePending(ctx context.Context, cutoff time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.StatusPending,
		"created_at": bson.M{"$lt": cutoff},
	}
	raw, err := r.coll.Distinct(ctx, "owner", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find stale pending appointments: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"status":       models.StatusCancelled,
		"cancelReason": "pending appointment expired",
		"cancelledAt":  now,
		"updated_at":   now,
	}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return nil, fmt.Errorf("failed to expire stale pending appointments: %w", err)
	}

	owners := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			owners = append(owners, s)
		}
	}
	return owners, nil
}

// overlapFilter selects confirmed/pending appointments of a professional whose
// effective range intersects [from, to) (half-open overlap).
func overlapFilter(owner, professionalID string, from, to time.Time) bson.M {
	return bson.M{
		"owner":          owner,
		"professionalId": professionalID,
		"status":         bson.M{"$in": []models.AppointmentStatus{models.StatusConfirmed, models.StatusPending}},
		"effectiveStart": bson.M{"$lt": to},
		"effectiveEnd":   bson.M{"$gt": from},
	}
}
