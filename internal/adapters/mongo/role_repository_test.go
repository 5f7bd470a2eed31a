package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/philly/member-admin/internal/authz/domain"
	"github.com/philly/member-admin/internal/authz/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func roleBSON(id primitive.ObjectID, name string, rank int, status string) bson.D {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "description", Value: "desc"},
		{Key: "permissions", Value: bson.A{"post_view", "post_edit"}},
		{Key: "rank", Value: rank},
		{Key: "status", Value: status},
		{Key: "created_at", Value: created},
		{Key: "updated_at", Value: created},
		{Key: "created_by", Value: "u-1"},
		{Key: "updated_by", Value: "u-1"},
	}
}

func TestRoleRepository_FindByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("decodes document", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		id := primitive.NewObjectID()
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, roleBSON(id, "editor", 3, "active")))

		role, err := repo.FindByID(context.Background(), id.Hex())

		require.NoError(t, err)
		require.NotNil(t, role)
		assert.Equal(t, id.Hex(), role.ID)
		assert.Equal(t, "editor", role.Name)
		assert.Equal(t, 3, role.Rank)
		assert.Equal(t, domain.RoleStatusActive, role.Status)
		assert.Equal(t, []string{"post_view", "post_edit"}, role.Permissions)
		assert.Equal(t, "u-1", role.CreatedBy)
	})

	mt.Run("missing document", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		role, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())

		require.NoError(t, err)
		assert.Nil(t, role)
	})

	mt.Run("malformed id is not found", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)

		role, err := repo.FindByID(context.Background(), "1")

		require.NoError(t, err)
		assert.Nil(t, role)
	})
}

func TestRoleRepository_FindAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("returns documents in order", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			roleBSON(first, "editor", 3, "active"),
			roleBSON(second, "moderator", 2, "inactive"),
		))

		roles, err := repo.FindAll(context.Background())

		require.NoError(t, err)
		require.Len(t, roles, 2)
		assert.Equal(t, "editor", roles[0].Name)
		assert.Equal(t, "moderator", roles[1].Name)
		assert.Equal(t, domain.RoleStatusInactive, roles[1].Status)
	})

	mt.Run("command failure", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11600, Message: "interrupted"}))

		_, err := repo.FindAll(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "RoleRepository.FindAll")
	})
}

func TestRoleRepository_FindByNames_Empty(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("no query issued", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)

		roles, err := repo.FindByNames(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, roles)
	})
}

func TestRoleRepository_Insert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("returns generated id", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		role, err := domain.NewRole("editor", "", 3, []string{"post_view"}, "u-1", time.Now())
		require.NoError(t, err)

		id, err := repo.Insert(context.Background(), role)

		require.NoError(t, err)
		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(t, err)
	})
}

func TestRoleRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()
	role := &domain.Role{
		ID:          primitive.NewObjectID().Hex(),
		Name:        "editor",
		Permissions: []string{"post_view"},
		Status:      domain.RoleStatusActive,
	}

	mt.Run("matched", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(t, repo.Update(context.Background(), role))
	})

	mt.Run("no match", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		assert.ErrorIs(t, repo.Update(context.Background(), role), ports.ErrNotFound)
	})

	mt.Run("malformed id", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		bad := role.Clone()
		bad.ID = "not-an-object-id"

		assert.ErrorIs(t, repo.Update(context.Background(), bad), ports.ErrNotFound)
	})
}

func TestRoleRepository_UpdateStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("no match", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), domain.RoleStatusInactive, "u-1", time.Now())

		assert.ErrorIs(t, err, ports.ErrNotFound)
	})
}

func TestRoleRepository_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("deleted", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(t, repo.Delete(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("nothing deleted", func(mt *mtest.T) {
		repo := newRoleRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(t, repo.Delete(context.Background(), primitive.NewObjectID().Hex()), ports.ErrNotFound)
	})
}
