package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventoried/internal/domain"
)

// UserRepo implements domain.UserRepository on the users collection.
type UserRepo struct {
	coll *mongo.Collection
}

var _ domain.UserRepository = (*UserRepo)(nil)

// NewUserRepo creates a user repository.
func NewUserRepo(d *DB) *UserRepo {
	return &UserRepo{coll: d.db.Collection("users")}
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:        d.ID.Hex(),
		Username:  d.Username,
		Email:     d.Email,
		Role:      d.Role,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// duplicateKeyError maps a unique-index violation onto the offending
// field so callers can report it like any other validation failure.
func duplicateKeyError(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	var errs domain.FieldErrors
	switch {
	case strings.Contains(msg, "username"):
		errs = errs.Add("username", "Username already exists")
	case strings.Contains(msg, "email"):
		errs = errs.Add("email", "Email already exists")
	default:
		return err
	}
	return errs
}

// List returns all users sorted newest-first by creation time.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]domain.User, len(docs))
	for i, d := range docs {
		users[i] = d.toDomain()
	}
	return users, nil
}

// GetByID returns the user with the given id, or (nil, nil) if absent.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc userDoc
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user := doc.toDomain()
	return &user, nil
}

// Create inserts a new user and fills in the store-assigned id.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	doc := userDoc{
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return duplicateKeyError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

// Update applies a $set of the supplied fields plus updatedAt, returning
// the updated document or (nil, nil) if absent.
func (r *UserRepo) Update(ctx context.Context, id string, patch domain.UserPatch, updatedAt time.Time) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.D{{Key: "updatedAt", Value: updatedAt}}
	if patch.Username != nil {
		set = append(set, bson.E{Key: "username", Value: *patch.Username})
	}
	if patch.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *patch.Role})
	}

	var doc userDoc
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
		return nil, duplicateKeyError(err)
	}
	user := doc.toDomain()
	return &user, nil
}

// Delete removes the user and returns the removed document, or
// (nil, nil) if absent.
func (r *UserRepo) Delete(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc userDoc
	err = r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user := doc.toDomain()
	return &user, nil
}
