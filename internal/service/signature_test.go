package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediquip/internal/domain"
	"mediquip/internal/domain/models"
)

// unreachableDB returns a database handle whose server can never be
// reached, with a short selection timeout so any attempted write fails
// fast. Lets tests observe which store call, if any, a code path
// issues first.
func unreachableDB(t *testing.T) *mongo.Database {
	t.Helper()
	opts := options.Client().
		ApplyURI("mongodb://localhost:1").
		SetServerSelectionTimeout(100 * time.Millisecond)
	client, err := mongo.Connect(context.Background(), opts)
	if err != nil {
		t.Fatalf("client setup: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("mediquip_test")
}

func newSignatureService(t *testing.T) *signatureService {
	t.Helper()
	return NewSignatureService(unreachableDB(t), testLogger()).(*signatureService)
}

func TestDeactivation(t *testing.T) {
	hq := primitive.NewObjectID()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	query, update := deactivation(hq, now)

	if query["headquarterId"] != hq || query["active"] != true {
		t.Errorf("query = %v, want headquarter-scoped active filter", query)
	}
	if len(query) != 2 {
		t.Errorf("query carries extra conditions: %v", query)
	}

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("update = %v, want a $set", update)
	}
	if set["active"] != false || set["updatedAt"] != now {
		t.Errorf("$set = %v", set)
	}
}

// A rejected create must leave the headquarter's signatures untouched:
// validation runs before the deactivation write, so an invalid payload
// fails without the store ever being contacted.
func TestSignatureCreateValidatesBeforeWriting(t *testing.T) {
	svc := newSignatureService(t)

	_, err := svc.Create(context.Background(), &models.Signature{
		HeadquarterID: primitive.NewObjectID(),
		Active:        true,
		// SignerName missing
	})

	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want validation failure", err)
	}
	if errors.Is(err, domain.ErrStore) {
		t.Fatal("invalid payload reached the store")
	}
}

// Creating an active signature first retires the currently active ones
// and only then inserts, so the headquarter ends with exactly one
// active signature. Against an unreachable store the first contact
// surfaces in the error: the bulk deactivation for an active payload,
// the insert for an inactive one.
func TestSignatureCreateDeactivatesBeforeInsert(t *testing.T) {
	svc := newSignatureService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &models.Signature{
		HeadquarterID: primitive.NewObjectID(),
		SignerName:    "Direccion Tecnica",
		Active:        true,
	})
	if !errors.Is(err, domain.ErrStore) {
		t.Fatalf("error = %v, want store failure", err)
	}
	if !strings.Contains(err.Error(), "updateMany") {
		t.Errorf("first store call = %q, want the bulk deactivation", err.Error())
	}

	_, err = svc.Create(ctx, &models.Signature{
		HeadquarterID: primitive.NewObjectID(),
		SignerName:    "Direccion Tecnica",
		Active:        false,
	})
	if !errors.Is(err, domain.ErrStore) {
		t.Fatalf("error = %v, want store failure", err)
	}
	if !strings.Contains(err.Error(), "create") {
		t.Errorf("first store call = %q, want the insert", err.Error())
	}
	if strings.Contains(err.Error(), "updateMany") {
		t.Error("inactive create issued a deactivation")
	}
}

// Role and permission grants never change through the generic update
// path, whoever the caller is. A payload reduced to those fields fails
// as empty before any store contact.
func TestAccountUpdateStripsRoleAndPermissions(t *testing.T) {
	svc := NewAccountService(unreachableDB(t), testLogger())

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), bson.M{
		"role":        models.RoleAdmin,
		"permissions": []string{primitive.NewObjectID().Hex()},
	})

	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("error = %v, want validation failure for an emptied payload", err)
	}
	if errors.Is(err, domain.ErrStore) {
		t.Fatal("stripped payload reached the store")
	}
}
