package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventoried/internal/domain"
)

// ItemRepo implements domain.ItemRepository on the items collection.
type ItemRepo struct {
	coll *mongo.Collection
}

var _ domain.ItemRepository = (*ItemRepo)(nil)

// NewItemRepo creates an item repository.
func NewItemRepo(d *DB) *ItemRepo {
	return &ItemRepo{coll: d.db.Collection("items")}
}

type itemDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Stock       int                `bson:"stock"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d itemDoc) toDomain() domain.Item {
	return domain.Item{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Stock:       d.Stock,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// List returns all items sorted newest-first by creation time.
func (r *ItemRepo) List(ctx context.Context) ([]domain.Item, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []itemDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]domain.Item, len(docs))
	for i, d := range docs {
		items[i] = d.toDomain()
	}
	return items, nil
}

// GetByID returns the item with the given id, or (nil, nil) if absent.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc itemDoc
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item := doc.toDomain()
	return &item, nil
}

// Create inserts a new item and fills in the store-assigned id.
func (r *ItemRepo) Create(ctx context.Context, item *domain.Item) error {
	doc := itemDoc{
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		Stock:       item.Stock,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid.Hex()
	}
	return nil
}

// Update applies a $set of the supplied fields plus updatedAt, returning
// the updated document or (nil, nil) if absent.
func (r *ItemRepo) Update(ctx context.Context, id string, patch domain.ItemPatch, updatedAt time.Time) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.D{{Key: "updatedAt", Value: updatedAt}}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *patch.Price})
	}
	if patch.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *patch.Category})
	}
	if patch.Stock != nil {
		set = append(set, bson.E{Key: "stock", Value: *patch.Stock})
	}

	var doc itemDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item := doc.toDomain()
	return &item, nil
}

// Delete removes the item and returns the removed document, or
// (nil, nil) if absent.
func (r *ItemRepo) Delete(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc itemDoc
	err = r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item := doc.toDomain()
	return &item, nil
}
