package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository is the per-collection CRUD surface. Every operation is
// atomic at single-document granularity only; there are no
// cross-collection transactions. A missing id on read, update or
// delete yields nil/false rather than an error; a malformed id or a
// store failure is an error.
type Repository[T any] struct {
	coll      *mongo.Collection
	relations []Relation
	logger    *slog.Logger
}

// New creates a repository over the named collection. The relation set
// declares which foreign-key fields populate can expand.
func New[T any](db *mongo.Database, collection string, relations []Relation, logger *slog.Logger) *Repository[T] {
	return &Repository[T]{
		coll:      db.Collection(collection),
		relations: relations,
		logger:    logger,
	}
}

// Name returns the backing collection name.
func (r *Repository[T]) Name() string {
	return r.coll.Name()
}

// Create inserts the document and returns the stored form with its
// generated id.
func (r *Repository[T]) Create(ctx context.Context, doc *T) (*T, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", r.coll.Name(), err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert into %s: unexpected id type %T", r.coll.Name(), res.InsertedID)
	}
	return r.findByObjectID(ctx, oid, false)
}

// Find returns every document matching the query, expanding relations
// when populate is set.
func (r *Repository[T]) Find(ctx context.Context, query bson.M, populate bool, sort bson.D) ([]T, error) {
	if query == nil {
		query = bson.M{}
	}

	if !populate || len(r.relations) == 0 {
		opts := options.Find()
		if sort != nil {
			opts.SetSort(sort)
		}
		cursor, err := r.coll.Find(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("find in %s: %w", r.coll.Name(), err)
		}
		return decodeAll[T](ctx, cursor)
	}

	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: query}}}
	if sort != nil {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	pipeline = append(pipeline, populateStages(r.relations)...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.coll.Name(), err)
	}
	return decodeAll[T](ctx, cursor)
}

// FindByID returns the document with the given id, or nil when absent.
// A malformed id is an error.
func (r *Repository[T]) FindByID(ctx context.Context, id string, populate bool) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return r.findByObjectID(ctx, oid, populate)
}

func (r *Repository[T]) findByObjectID(ctx context.Context, oid primitive.ObjectID, populate bool) (*T, error) {
	docs, err := r.Find(ctx, bson.M{"_id": oid}, populate, nil)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// FindByPaginate reads one page of the matching documents.
//
// Two-phase strategy: a single aggregation computes the total count
// and the page-restricted id list (sort, skip and limit pushed into
// the store), then a plain populated query fetches exactly those ids.
// The aggregation path cannot carry relation expansion, so the split
// guarantees correct population while the store still does the window
// arithmetic.
func (r *Repository[T]) FindByPaginate(ctx context.Context, query bson.M, page PageRequest, populate bool) (*Page[T], error) {
	if query == nil {
		query = bson.M{}
	}
	page.ApplyDefaults()
	sort := page.SortSpec()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: query}},
		bson.D{{Key: "$sort", Value: sort}},
		bson.D{{Key: "$facet", Value: bson.M{
			"total": []bson.D{
				{{Key: "$count", Value: "count"}},
			},
			"ids": []bson.D{
				{{Key: "$skip", Value: page.Skip()}},
				{{Key: "$limit", Value: int64(page.PerPage)}},
				{{Key: "$project", Value: bson.M{"_id": 1}}},
			},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("paginate %s: %w", r.coll.Name(), err)
	}

	var phases []struct {
		Total []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
		IDs []struct {
			ID primitive.ObjectID `bson:"_id"`
		} `bson:"ids"`
	}
	if err := cursor.All(ctx, &phases); err != nil {
		return nil, fmt.Errorf("paginate %s: %w", r.coll.Name(), err)
	}

	result := &Page[T]{
		Items:   []T{},
		Page:    page.Page,
		PerPage: page.PerPage,
	}
	if len(phases) == 0 {
		return result, nil
	}
	if len(phases[0].Total) > 0 {
		result.Total = phases[0].Total[0].Count
	}
	result.PageCount = PageCount(result.Total, page.PerPage)
	if len(phases[0].IDs) == 0 {
		return result, nil
	}

	ids := make([]primitive.ObjectID, 0, len(phases[0].IDs))
	for _, row := range phases[0].IDs {
		ids = append(ids, row.ID)
	}

	items, err := r.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, populate, sort)
	if err != nil {
		return nil, err
	}
	result.Items = items
	return result, nil
}

// Update applies a $set of the given changes and returns the updated
// document, or nil when the id does not exist.
func (r *Repository[T]) Update(ctx context.Context, id string, changes bson.M, populate bool) (*T, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	res := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": changes},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err := res.Err(); err != nil {
		if IsNoDocumentsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("update %s: %w", r.coll.Name(), err)
	}

	if populate && len(r.relations) > 0 {
		return r.findByObjectID(ctx, oid, true)
	}

	var doc T
	if err := res.Decode(&doc); err != nil {
		return nil, fmt.Errorf("update %s: %w", r.coll.Name(), err)
	}
	return &doc, nil
}

// UpdateMany applies the update document to every match and returns
// the modified count.
func (r *Repository[T]) UpdateMany(ctx context.Context, query, update bson.M) (int64, error) {
	res, err := r.coll.UpdateMany(ctx, query, update)
	if err != nil {
		return 0, fmt.Errorf("update many in %s: %w", r.coll.Name(), err)
	}
	return res.ModifiedCount, nil
}

// Delete removes the document. It reports false, not an error, when
// the id does not exist; a hard delete leaves no tombstone.
func (r *Repository[T]) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", r.coll.Name(), err)
	}
	return res.DeletedCount > 0, nil
}

// Aggregate runs an arbitrary pipeline against the collection and
// decodes every result row into out (a pointer to a slice). Ownership
// traversals go through here.
func (r *Repository[T]) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", r.coll.Name(), err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("aggregate %s: %w", r.coll.Name(), err)
	}
	return nil
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	return docs, nil
}
