package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/manea/internal/domain/models"
)

// userDocument is the stored shape of a user. The password hash lives only
// here so it never rides along on models.User.
type userDocument struct {
	models.User  `bson:",inline"`
	PasswordHash string `bson:"password_hash"`
}

// UserRepo stores users.
type UserRepo struct {
	coll *mongo.Collection
}

// Insert persists a new user together with its credential hash.
func (r *UserRepo) Insert(ctx context.Context, user models.User, passwordHash string) error {
	doc := userDocument{User: user, PasswordHash: passwordHash}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return dependencyErr("insert user", err)
	}
	return nil
}

// FindByID fetches one user by its id.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &models.NotFoundError{Entity: "user", ID: id}
	}
	if err != nil {
		return nil, dependencyErr("find user", err)
	}
	return &doc.User, nil
}

// FindByEmail fetches one user by email, returning the stored password hash
// alongside it.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", &models.NotFoundError{Entity: "user", ID: email}
	}
	if err != nil {
		return nil, "", dependencyErr("find user by email", err)
	}
	return &doc.User, doc.PasswordHash, nil
}

// List returns all users.
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, dependencyErr("list users", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, dependencyErr("decode users", err)
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.User)
	}
	return users, nil
}
