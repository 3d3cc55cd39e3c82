package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

type mongoRepository struct {
	orders *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{orders: db.Collection(ordersCollection)}
}

// EnsureIndexes creates the order number uniqueness constraint and the
// lookup indexes. The unique index is the last line of defence behind the
// atomic day counter.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ordersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "customer.email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "payment_status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}

func (r *mongoRepository) Create(ctx context.Context, o *Order) error {
	// A single-document insert is atomic in MongoDB, so the order and its
	// items land together or not at all.
	_, err := r.orders.InsertOne(ctx, o)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateOrderNumber, o.OrderNumber)
		}
		return fmt.Errorf("failed to insert order %s: %w", o.OrderNumber, err)
	}
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order %s: %w", id, err)
	}
	return &o, nil
}

func (r *mongoRepository) List(ctx context.Context, filter ListFilter) ([]Order, int64, error) {
	filter.Normalize()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Email != "" {
		query["customer.email"] = strings.ToLower(filter.Email)
	}

	total, err := r.orders.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.orders.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]Order, 0, filter.Limit)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, total, nil
}

func (r *mongoRepository) ListByCustomerEmail(ctx context.Context, email string) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.orders.Find(ctx, bson.M{"customer.email": strings.ToLower(email)}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders for customer %s: %w", email, err)
	}
	defer cursor.Close(ctx)

	orders := make([]Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders for customer %s: %w", email, err)
	}
	return orders, nil
}

func (r *mongoRepository) UpdateStatus(ctx context.Context, id string, update StatusUpdate) error {
	set := bson.M{
		"status":     update.Status,
		"updated_at": time.Now().UTC(),
	}
	if update.TrackingNumber != "" {
		set["tracking_number"] = update.TrackingNumber
	}
	if update.EstimatedDelivery != nil {
		set["estimated_delivery"] = update.EstimatedDelivery
	}

	result, err := r.orders.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update status for order %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *mongoRepository) UpdatePaymentStatus(ctx context.Context, id string, status PaymentStatus) error {
	set := bson.M{
		"payment_status": status,
		"updated_at":     time.Now().UTC(),
	}

	result, err := r.orders.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update payment status for order %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}
