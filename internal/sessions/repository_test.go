package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save upserts", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, repo.Save(context.Background(), &Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}))
	})

	mt.Run("get live session", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "s1"},
			{Key: "currentUser", Value: "admin"},
			{Key: "expiresAt", Value: time.Now().Add(time.Hour)},
		}))
		s, err := repo.Get(context.Background(), "s1")
		require.NoError(mt, err)
		require.NotNil(mt, s)
		require.Equal(mt, "admin", s.CurrentUser)
	})

	mt.Run("get expired session", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "s1"},
			{Key: "expiresAt", Value: time.Now().Add(-time.Hour)},
		}))
		s, err := repo.Get(context.Background(), "s1")
		require.NoError(mt, err)
		require.Nil(mt, s)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, repo.Delete(context.Background(), "s1"))
	})
}
