package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	authzports "github.com/philly/member-admin/internal/authz/ports"
	"github.com/philly/member-admin/internal/users/domain"
	"github.com/philly/member-admin/internal/users/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// User documents are keyed by the identity provider's user id.
type userDocument struct {
	ID          string    `bson:"_id"`
	Email       string    `bson:"email"`
	Username    string    `bson:"username"`
	DisplayName string    `bson:"display_name,omitempty"`
	Roles       []string  `bson:"roles"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// UserRepository implements ports.UserRepository on the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

var (
	_ ports.UserRepository        = (*UserRepository)(nil)
	_ authzports.UserRoleAppender = (*UserRepository)(nil)
)

// NewUserRepository creates a user repository on store.
func NewUserRepository(store *Store) *UserRepository {
	return newUserRepository(store.Database().Collection(UsersCollection))
}

func newUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}

	_, err := r.coll.InsertOne(ctx, userDocument{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Roles:       roles,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}

	roles := doc.Roles
	if roles == nil {
		roles = []string{}
	}
	return &domain.User{
		ID:          doc.ID,
		Email:       doc.Email,
		Username:    doc.Username,
		DisplayName: doc.DisplayName,
		Roles:       roles,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

// AppendRoles pushes roleNames onto every matching document with one
// updateMany. Each document update is atomic; the batch as a whole is not.
func (r *UserRepository) AppendRoles(ctx context.Context, userIDs []string, roleNames []string) (int64, error) {
	if len(userIDs) == 0 || len(roleNames) == 0 {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": userIDs}},
		bson.M{
			"$push": bson.M{"roles": bson.M{"$each": roleNames}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append roles: %w", err)
	}
	return res.ModifiedCount, nil
}
