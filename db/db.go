package db

import (
	"context"
	"log"

	"unwind/globals"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	RoomsCollection    *mongo.Collection
	BookingsCollection *mongo.Collection
	BlogsCollection    *mongo.Collection
	Client             *mongo.Client
)

// Initialize MongoDB connection
func init() {
	uri := globals.EnvOr("MONGODB_URI", "mongodb://localhost:27017")
	dbName := globals.EnvOr("MONGODB_DB", "unwinddb")

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	UserCollection = Client.Database(dbName).Collection("users")
	RoomsCollection = Client.Database(dbName).Collection("rooms")
	BookingsCollection = Client.Database(dbName).Collection("bookings")
	BlogsCollection = Client.Database(dbName).Collection("blogs")
}
