package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediquip/internal/domain/models"
)

// Run with: go run scripts/ensure_indexes.go
//
// Creates the unique constraints and the foreign-key indexes the
// ownership traversals and populated reads depend on. Safe to rerun;
// existing indexes are left alone.
func main() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "mediquip"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(dbName)

	indexes := map[string][]mongo.IndexModel{
		models.CollUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		},
		models.CollHeadquarters: {
			{Keys: bson.D{{Key: "clientId", Value: 1}}},
		},
		models.CollOffices: {
			{Keys: bson.D{{Key: "headquarterId", Value: 1}}},
		},
		models.CollEquipments: {
			{Keys: bson.D{{Key: "officeId", Value: 1}}},
			{Keys: bson.D{{Key: "officeId", Value: 1}, {Key: "serial", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		models.CollServiceRequests: {
			{Keys: bson.D{{Key: "equipmentId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		models.CollActivities: {
			{Keys: bson.D{{Key: "serviceRequestId", Value: 1}}},
		},
		models.CollMaintenances: {
			{Keys: bson.D{{Key: "serviceRequestId", Value: 1}}},
		},
		models.CollSchedules: {
			{Keys: bson.D{{Key: "equipmentId", Value: 1}}},
			{Keys: bson.D{{Key: "startsAt", Value: 1}}},
		},
		models.CollSignatures: {
			{Keys: bson.D{{Key: "headquarterId", Value: 1}, {Key: "active", Value: 1}}},
		},
	}

	for coll, idx := range indexes {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, idx)
		if err != nil {
			log.Fatalf("Failed to create indexes on %s: %v", coll, err)
		}
		log.Printf("%s: %v", coll, names)
	}

	log.Println("All indexes ensured")
}
