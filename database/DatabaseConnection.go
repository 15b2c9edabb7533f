package database

import (
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"os"
	"reelhive/intializers"
	"time"
)

func DBinstance() *mongo.Client {
	// Load environment variables
	intializers.LoadEnvVariables()

	MongoUri := os.Getenv("MONGO_URI")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(MongoUri))
	if err != nil {
		panic(err)
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		panic(err)
	}
	fmt.Println("Connected to MongoDB!")
	return client
}

var Client *mongo.Client = DBinstance()

var GridFSBucket *gridfs.Bucket = newGridFSBucket(Client)

func newGridFSBucket(client *mongo.Client) *gridfs.Bucket {
	bucket, err := gridfs.NewBucket(client.Database(os.Getenv("DB_NAME")))
	if err != nil {
		panic(err)
	}
	return bucket
}

func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	collection := client.Database(os.Getenv("DB_NAME")).Collection(collectionName)
	return collection
}
