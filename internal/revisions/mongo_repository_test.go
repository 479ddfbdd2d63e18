package revisions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("append upserts", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		require.NoError(mt, repo.Append(context.Background(), "test.txt", "v1"))
	})

	mt.Run("append error", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11000, Message: "boom"}))
		require.Error(mt, repo.Append(context.Background(), "test.txt", "v1"))
	})

	mt.Run("list returns snapshots", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "test.txt"},
			{Key: "revisions", Value: bson.A{"v1", "v2"}},
		}))
		got, err := repo.List(context.Background(), "test.txt")
		require.NoError(mt, err)
		require.Equal(mt, []string{"v1", "v2"}, got)
	})

	mt.Run("list missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		got, err := repo.List(context.Background(), "nothing.txt")
		require.NoError(mt, err)
		require.Nil(mt, got)
	})
}
