package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
)

const (
	collectionVehicles = "vehicles"
	collectionCounters = "counters"
	vehicleIDCounter   = "vehicle_id"
)

// VehicleRepository implements ports.VehicleRepository using MongoDB.
//
// The plate uniqueness invariant lives here: a unique index on "plate" makes
// the check-and-insert atomic at the storage engine, and duplicate-key errors
// are translated into *domain.ConflictError. Two concurrent creates for the
// same plate therefore resolve to exactly one success.
type VehicleRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{
		col:      db.Collection(collectionVehicles),
		counters: db.Collection(collectionCounters),
	}
}

// nextID increments and returns the vehicle id counter. Ids are monotonic;
// gaps left by rejected inserts are harmless.
func (r *VehicleRepository) nextID(ctx context.Context) (int64, error) {
	res := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": vehicleIDCounter},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, fmt.Errorf("next vehicle id: %w", err)
	}
	return doc.Seq, nil
}

// Insert assigns the next id to v and stores it. A plate collision is
// rejected by the unique index and surfaced as *domain.ConflictError.
func (r *VehicleRepository) Insert(ctx context.Context, v *domain.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	v.ID = id

	if _, err := r.col.InsertOne(ctx, v); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ConflictError{Plate: v.Plate}
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.Vehicle
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &domain.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return &v, nil
}

// List returns the page [offset, offset+limit) in ascending id order, which
// is insertion order, plus the total count. An out-of-range offset yields an
// empty slice, not an error.
func (r *VehicleRepository) List(ctx context.Context, offset, limit int64) ([]*domain.Vehicle, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count vehicles: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	vehicles := make([]*domain.Vehicle, 0)
	for cursor.Next(ctx) {
		var v domain.Vehicle
		if err := cursor.Decode(&v); err != nil {
			return nil, 0, fmt.Errorf("decode vehicle: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list vehicles: %w", err)
	}

	return vehicles, total, nil
}

// Update replaces the mutable fields of the vehicle with v.ID. Setting the
// document's own plate to itself does not trip the unique index; only a
// collision with a different document does.
func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"plate":  v.Plate,
		"make":   v.Make,
		"model":  v.Model,
		"color":  v.Color,
		"status": v.Status,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"id": v.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &domain.ConflictError{Plate: v.Plate}
		}
		return fmt.Errorf("update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return &domain.NotFoundError{ID: v.ID}
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if res.DeletedCount == 0 {
		return &domain.NotFoundError{ID: id}
	}
	return nil
}

// EnsureIndexes creates the unique plate index and the id lookup index.
func (r *VehicleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "plate", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
