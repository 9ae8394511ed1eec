// Package ownership derives the effective owner of a resource.
//
// Ownership is not a stored field. Every non-root document carries
// exactly one parent reference, so walking the fixed foreign-key chain
// up to the root client account is deterministic while the chain is
// intact. Each resource type supplies its chain as a pure value; the
// builder turns it into the two pipeline shapes the access layer
// consumes: a single-id owner projection and a multi-id membership
// filter.
package ownership

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Hop is one join-then-flatten step of an ownership traversal.
type Hop struct {
	From       string // collection to join
	LocalField string // reference field, dotted into prior hops
	As         string // embedded field the join lands in
}

// Chain is the ordered walk from a resource up to the root client
// account. The last hop always lands in the users collection.
type Chain []Hop

// OwnerRow is the terminal projection of an owner traversal.
type OwnerRow struct {
	ID    primitive.ObjectID `bson:"_id"`
	Owner primitive.ObjectID `bson:"owner"`
}

// IDRow is the terminal projection of a membership traversal.
type IDRow struct {
	ID primitive.ObjectID `bson:"_id"`
}

// hopStages builds the lookup/unwind pair for every hop. The unwind
// deliberately does not preserve null or empty results: a broken chain
// step behaves as an inner join and the record silently disappears,
// which keeps dangling resources invisible to every non-admin role.
func (c Chain) hopStages() []bson.D {
	stages := make([]bson.D, 0, len(c)*2)
	for _, hop := range c {
		stages = append(stages,
			bson.D{{Key: "$lookup", Value: bson.M{
				"from":         hop.From,
				"localField":   hop.LocalField,
				"foreignField": "_id",
				"as":           hop.As,
			}}},
			bson.D{{Key: "$unwind", Value: "$" + hop.As}},
		)
	}
	return stages
}

// ownerPath is the expression addressing the root owner id after the
// full walk.
func (c Chain) ownerPath() string {
	return c[len(c)-1].As + "._id"
}

// Owner builds the traversal computing {resourceId, ownerId} for one
// resource. An empty result means the resource is absent or its chain
// is broken.
func (c Chain) Owner(id primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
	}
	pipeline = append(pipeline, c.hopStages()...)
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"_id":   1,
		"owner": "$" + c.ownerPath(),
	}}})
	return pipeline
}

// ByUsers builds the traversal projecting the ids of every resource
// whose derived owner is in the candidate set. List filtering for the
// permission-scoped roles runs on this shape.
func (c Chain) ByUsers(owners []primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, c.hopStages()...)
	pipeline = append(pipeline,
		bson.D{{Key: "$match", Value: bson.M{c.ownerPath(): bson.M{"$in": owners}}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 1}}},
	)
	return pipeline
}
