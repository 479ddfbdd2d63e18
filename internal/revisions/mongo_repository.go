package revisions

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type historyDoc struct {
	Name      string   `bson:"_id"`
	Revisions []string `bson:"revisions"`
}

// MongoRepository stores one document per file name with its snapshots in a
// `revisions` array. Appends use $push so concurrent writers never overwrite
// each other.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Append(ctx context.Context, name, content string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$push": bson.M{"revisions": content}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoRepository) List(ctx context.Context, name string) ([]string, error) {
	var d historyDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": name}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return d.Revisions, nil
}
