package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/vidly-api/internal/database"
	"github.com/iliyamo/vidly-api/internal/model"
)

// UserRepo encapsulates queries on the users collection.
type UserRepo struct {
	store store[model.User]
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{store: store[model.User]{
		coll: db.Collection(database.Users),
		sort: bson.D{{Key: "name", Value: 1}},
	}}
}

// NormalizeEmail lower-cases and trims an address before it is stored or
// looked up.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// Create inserts the user.  u.Password must already be hashed.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = primitive.NewObjectID()
	u.Email = NormalizeEmail(u.Email)
	if err := r.store.insert(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.store.findOne(ctx, bson.M{"email": NormalizeEmail(email)})
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.store.get(ctx, id)
}

// SetAdmin grants or revokes the admin flag.
func (r *UserRepo) SetAdmin(ctx context.Context, email string, admin bool) (*model.User, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return r.store.set(ctx, u.ID, bson.M{"isAdmin": admin})
}
