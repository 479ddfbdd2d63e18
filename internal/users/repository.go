package users

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/filecms/filecms/internal/models"
	"github.com/filecms/filecms/internal/yamlfile"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrAlreadyTaken = errors.New("username already taken")

// UserRepository defines persistence operations for users.
// GetByUsername returns (nil, nil) when the user does not exist.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// FileUserRepository keeps a `username: hash` YAML mapping. The mutex covers
// the whole check, insert and rewrite sequence.
type FileUserRepository struct {
	mu    sync.Mutex
	path  string
	users map[string]string
}

func NewFileUserRepository(path string) (*FileUserRepository, error) {
	m := map[string]string{}
	if err := yamlfile.Load(path, &m); err != nil {
		return nil, err
	}
	return &FileUserRepository{path: path, users: m}, nil
}

func (r *FileUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return &models.User{Username: username, PasswordHash: hash}, nil
}

func (r *FileUserRepository) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return ErrAlreadyTaken
	}
	r.users[u.Username] = u.PasswordHash
	if err := yamlfile.Save(r.path, r.users); err != nil {
		delete(r.users, u.Username)
		return err
	}
	return nil
}

// MongoUserRepository implements UserRepository using MongoDB
type MongoUserRepository struct {
	col *mongo.Collection
}

// NewMongoUserRepository creates a new repository for the given collection
func NewMongoUserRepository(col *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{col: col}
}

// EnsureIndexes creates the unique username index that backs ErrAlreadyTaken.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *MongoUserRepository) Create(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyTaken
		}
		return err
	}
	return nil
}
