package sequence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// Mongo keeps one counter document per day and relies on the atomicity of
// findOneAndUpdate with $inc. The upsert creates the day's document on its
// first order.
type Mongo struct {
	counters *mongo.Collection
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{counters: db.Collection(countersCollection)}
}

func (m *Mongo) Next(ctx context.Context, day string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": day},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to increment day counter %s: %w", day, err)
	}

	return doc.Seq, nil
}
