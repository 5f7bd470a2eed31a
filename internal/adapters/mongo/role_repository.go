package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type roleDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Permissions []string           `bson:"permissions"`
	Rank        int                `bson:"rank"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	CreatedBy   string             `bson:"created_by"`
	UpdatedBy   string             `bson:"updated_by"`
}

func (d roleDocument) toDomain() *domain.Role {
	permissions := d.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return &domain.Role{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Permissions: permissions,
		Rank:        d.Rank,
		Status:      domain.RoleStatus(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		CreatedBy:   d.CreatedBy,
		UpdatedBy:   d.UpdatedBy,
	}
}

func roleDocumentFrom(r *domain.Role) roleDocument {
	permissions := r.Permissions
	if permissions == nil {
		permissions = []string{}
	}
	return roleDocument{
		Name:        r.Name,
		Description: r.Description,
		Permissions: permissions,
		Rank:        r.Rank,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CreatedBy:   r.CreatedBy,
		UpdatedBy:   r.UpdatedBy,
	}
}

// RoleRepository implements ports.RoleRepository on the roles collection.
type RoleRepository struct {
	coll *mongo.Collection
}

var _ ports.RoleRepository = (*RoleRepository)(nil)

// NewRoleRepository creates a role repository on store.
func NewRoleRepository(store *Store) *RoleRepository {
	return newRoleRepository(store.Database().Collection(RolesCollection))
}

func newRoleRepository(coll *mongo.Collection) *RoleRepository {
	return &RoleRepository{coll: coll}
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]*domain.Role, error) {
	return r.find(ctx, "RoleRepository.FindAll", bson.M{})
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, "RoleRepository.FindByID", bson.M{"_id": oid})
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, "RoleRepository.FindByName", bson.M{"name": name})
}

func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]*domain.Role, error) {
	if len(names) == 0 {
		return []*domain.Role{}, nil
	}
	return r.find(ctx, "RoleRepository.FindByNames", bson.M{"name": bson.M{"$in": names}})
}

func (r *RoleRepository) Insert(ctx context.Context, role *domain.Role) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, roleDocumentFrom(role))
	if err != nil {
		return "", fmt.Errorf("RoleRepository.Insert: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("RoleRepository.Insert: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *RoleRepository) Update(ctx context.Context, role *domain.Role) error {
	return r.updateByID(ctx, "RoleRepository.Update", role.ID, bson.M{
		"name":        role.Name,
		"description": role.Description,
		"permissions": roleDocumentFrom(role).Permissions,
		"rank":        role.Rank,
		"status":      string(role.Status),
		"updated_at":  role.UpdatedAt,
		"updated_by":  role.UpdatedBy,
	})
}

func (r *RoleRepository) UpdateStatus(ctx context.Context, id string, status domain.RoleStatus, updatedBy string, updatedAt time.Time) error {
	return r.updateByID(ctx, "RoleRepository.UpdateStatus", id, bson.M{
		"status":     string(status),
		"updated_at": updatedAt,
		"updated_by": updatedBy,
	})
}

func (r *RoleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ports.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("RoleRepository.Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) updateByID(ctx context.Context, op, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ports.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *RoleRepository) findOne(ctx context.Context, op string, filter bson.M) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleDocument
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toDomain(), nil
}

func (r *RoleRepository) find(ctx context.Context, op string, filter bson.M) ([]*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cursor.Close(ctx)

	var docs []roleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	roles := make([]*domain.Role, 0, len(docs))
	for _, doc := range docs {
		roles = append(roles, doc.toDomain())
	}
	return roles, nil
}
