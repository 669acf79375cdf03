package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rogerio-castellano/inventory-dashboard/internal/models"
)

// withoutID keeps the store's internal identity out of every read.
var withoutID = bson.M{"_id": 0}

var insertionOrder = bson.D{{Key: "_id", Value: 1}}

type MongoProductRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewMongoProductRepository(col *mongo.Collection, timeout time.Duration) *MongoProductRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MongoProductRepository{col: col, timeout: timeout}
}

// EnsureSchema creates the unique index on name that backs Create.
func (r *MongoProductRepository) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	})
	if err != nil {
		return fmt.Errorf("create name index: %w", err)
	}
	return nil
}

func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(withoutID).SetSort(insertionOrder))
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *MongoProductRepository) GetByName(ctx context.Context, name string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"name": name}, options.FindOne().SetProjection(withoutID)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %q: %w", name, err)
	}
	return p, nil
}

// Create upserts with $setOnInsert so the existence check and the insert are
// one server-side operation. A concurrent insert that wins the race surfaces
// as a duplicate key error from the unique index.
func (r *MongoProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{
		"category":   p.Category,
		"quantity":   p.Quantity,
		"unit_price": p.UnitPrice,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"name": p.Name}, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product %q: %w", p.Name, err)
	}
	if res.UpsertedCount == 0 {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return p, nil
}

func (r *MongoProductRepository) Update(ctx context.Context, name string, quantity int, unitPrice float64) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutID)
	update := bson.M{"$set": bson.M{"quantity": quantity, "unit_price": unitPrice}}

	var p models.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("update product %q: %w", name, err)
	}
	return p, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("delete product %q: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
