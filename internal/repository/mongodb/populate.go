package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Relation declares a foreign-key field that can be expanded into the
// referenced document at read time. Children expand references inside
// the joined document, so a relation tree yields recursive expansion.
type Relation struct {
	From       string
	LocalField string
	As         string
	Children   []Relation
}

// populateStages builds the lookup/unwind stage pairs for a relation
// set. The unwind preserves null and empty results: a dangling
// reference leaves the parent document in the result with the expanded
// field absent, it never drops the document. (Ownership traversals use
// inner-join unwinds instead; see the ownership package.)
func populateStages(relations []Relation) []bson.D {
	stages := make([]bson.D, 0, len(relations)*2)
	for _, rel := range relations {
		lookup := bson.M{
			"from":         rel.From,
			"localField":   rel.LocalField,
			"foreignField": "_id",
			"as":           rel.As,
		}
		if len(rel.Children) > 0 {
			sub := make([]bson.D, 0, len(rel.Children)*2)
			sub = append(sub, populateStages(rel.Children)...)
			lookup["pipeline"] = sub
		}
		stages = append(stages,
			bson.D{{Key: "$lookup", Value: lookup}},
			bson.D{{Key: "$unwind", Value: bson.M{
				"path":                       "$" + rel.As,
				"preserveNullAndEmptyArrays": true,
			}}},
		)
	}
	return stages
}
