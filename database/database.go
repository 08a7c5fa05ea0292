package database

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var Users *mongo.Collection
var Posts *mongo.Collection
var Confessions *mongo.Collection
var PushSubs *mongo.Collection

const dbName = "comsiconnect"

func Connect() error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		log.Warn().Msg("MONGODB_URI not set, using default localhost")
		uri = "mongodb://127.0.0.1:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := Client.Ping(ctx, nil); err != nil {
		return err
	}

	db := Client.Database(dbName)
	Users = db.Collection("users")
	Posts = db.Collection("posts")
	Confessions = db.Collection("confessions")
	PushSubs = db.Collection("push_subscriptions")

	if err := ensureIndexes(ctx); err != nil {
		return err
	}

	log.Info().Msg("connected to MongoDB")
	return nil
}

func ensureIndexes(ctx context.Context) error {
	_, err := Users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "anonymousID", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return err
	}

	// The feed read path sorts and sweeps by recency.
	_, err = Posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = Confessions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

// Txn runs fn inside a session transaction when the deployment supports it
// (replica set or mongos). On standalone mongo, where transactions are
// unavailable, fn runs directly with the plain context and the caller's
// compensation logic is the only safety net.
func Txn(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := Client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && isTxnUnsupported(err) {
		return fn(ctx)
	}
	return err
}

// Code 20 / IllegalOperation: "Transaction numbers are only allowed on a
// replica set member or mongos".
func isTxnUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 20 || cmdErr.Name == "IllegalOperation"
	}
	return false
}

func Disconnect() error {
	if Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		return err
	}

	log.Info().Msg("disconnected from MongoDB")
	return nil
}
