package changefeed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifeline/response-dashboard/internal/core/domain"
	"github.com/lifeline/response-dashboard/internal/core/ports"
	mongodb "github.com/lifeline/response-dashboard/internal/infrastructure/db/mongo"
)

// MongoFeed watches collection change streams. It needs a replica set or sharded cluster.
type MongoFeed struct {
	db  *mongo.Database
	log zerolog.Logger
}

func NewMongoFeed(db *mongo.Database, log zerolog.Logger) *MongoFeed {
	return &MongoFeed{db: db, log: log.With().Str("feed", "mongo").Logger()}
}

var watchedOperations = bson.A{"insert", "update", "replace", "delete"}

func (f *MongoFeed) Subscribe(ctx context.Context, kind domain.Kind) (ports.Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "operationType", Value: bson.D{{Key: "$in", Value: watchedOperations}}}}}},
	}
	stream, err := f.db.Collection(mongodb.CollectionFor(kind)).Watch(ctx, pipeline)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("watch %s: %w", kind, err)
	}

	done := make(chan struct{})
	sub := newSubscription(kind, func() error {
		cancel()
		<-done
		return nil
	})

	go func() {
		defer close(done)
		defer sub.finish()
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			sub.deliver(ports.ChangeEvent{Kind: kind, At: time.Now().UTC()})
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			f.log.Error().Err(err).Str("kind", string(kind)).Msg("change stream ended")
		}
	}()

	return sub, nil
}

// Publish is a no-op: the change stream already reports every write.
func (f *MongoFeed) Publish(context.Context, ports.ChangeEvent) error { return nil }
