package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/motorpool/vehicle-registry/internal/core/domain"
)

const collectionEvents = "registry_events"

// EventRepository stores the registry's audit trail.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

func (r *EventRepository) Insert(ctx context.Context, e *domain.RegistryEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert registry event: %w", err)
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (r *EventRepository) ListRecent(ctx context.Context, limit int64) ([]*domain.RegistryEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list registry events: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]*domain.RegistryEvent, 0)
	for cursor.Next(ctx) {
		var e domain.RegistryEvent
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode registry event: %w", err)
		}
		events = append(events, &e)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list registry events: %w", err)
	}

	return events, nil
}
