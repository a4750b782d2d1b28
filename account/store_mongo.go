package account

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoTimeout = 10 * time.Second

type mongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(c *mongo.Collection) Store {
	return &mongoStore{collection: c}
}

//ConnectMongo connects to uri and verifies the connection with a ping
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultMongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (m *mongoStore) Has(ctx context.Context, id ID) (bool, error) {
	n, err := m.collection.CountDocuments(ctx, byID(id), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (m *mongoStore) Get(ctx context.Context, id ID) (*Account, error) {
	var acc Account
	sr := m.collection.FindOne(ctx, byID(id))

	if sr.Err() == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}

	if err := sr.Decode(&acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (m *mongoStore) Set(ctx context.Context, acc *Account) error {
	_, err := m.collection.ReplaceOne(ctx, byID(acc.ID), acc, options.Replace().SetUpsert(true))
	return err
}

func (m *mongoStore) Entries(ctx context.Context) ([]*Account, error) {
	cur, err := m.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	accounts := []*Account{}
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func byID(id ID) bson.M {
	return bson.M{"_id": string(id)}
}
