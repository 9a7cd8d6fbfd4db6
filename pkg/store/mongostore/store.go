// Package mongostore publishes catalog asset records to MongoDB.
//
// Each asset entry becomes one document keyed by (section, name). Publishing
// replaces existing documents and stamps every record of a run with the same
// batch id, so consumers can tell which records a publish touched.
package mongostore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/assetgrid/pkg/catalog"
)

// AssetDocument is the stored form of one asset record.
type AssetDocument struct {
	Section        string    `bson:"section" json:"section"`
	Name           string    `bson:"name" json:"name"`
	File           string    `bson:"file" json:"file"`
	Description    string    `bson:"description" json:"description"`
	Usage          string    `bson:"usage" json:"usage"`
	Specifications bson.D    `bson:"specifications,omitempty" json:"-"`
	BatchID        string    `bson:"batch_id" json:"batch_id"`
	PublishedAt    time.Time `bson:"published_at" json:"published_at"`
}

// Result summarises a publish.
type Result struct {
	BatchID  string
	Records  int
	Inserted int64
	Updated  int64
}

// Store wraps a MongoDB collection.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// Connect opens a client for uri and pings the primary.
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{
		client: client,
		coll:   client.Database(database).Collection(collection),
		now:    time.Now,
	}, nil
}

// EnsureIndexes creates the unique (section, name) index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "section", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("section_name"),
	})
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Publish upserts every asset record of doc.
func (s *Store) Publish(ctx context.Context, doc *catalog.Document) (*Result, error) {
	batch := uuid.NewString()
	docs := Documents(doc, batch, s.now().UTC())
	res := &Result{BatchID: batch, Records: len(docs)}
	if len(docs) == 0 {
		return res, nil
	}

	models := make([]mongo.WriteModel, len(docs))
	for i, d := range docs {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "section", Value: d.Section}, {Key: "name", Value: d.Name}}).
			SetReplacement(d).
			SetUpsert(true)
	}

	bw, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return nil, fmt.Errorf("bulk write: %w", err)
	}
	res.Inserted = bw.UpsertedCount
	res.Updated = bw.ModifiedCount
	return res, nil
}

// Batch returns the records written by one publish.
func (s *Store) Batch(ctx context.Context, batchID string) ([]AssetDocument, error) {
	cur, err := s.coll.Find(ctx, bson.D{{Key: "batch_id", Value: batchID}},
		options.Find().SetSort(bson.D{{Key: "section", Value: 1}, {Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find batch: %w", err)
	}
	var out []AssetDocument
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return out, nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Documents converts the asset records of doc to stored documents.
func Documents(doc *catalog.Document, batchID string, at time.Time) []AssetDocument {
	records := doc.Records()
	out := make([]AssetDocument, 0, len(records))
	for _, r := range records {
		out = append(out, AssetDocument{
			Section:        r.Section,
			Name:           r.Name,
			File:           r.File,
			Description:    r.Description,
			Usage:          r.Usage,
			Specifications: toBSON(r.Specifications),
			BatchID:        batchID,
			PublishedAt:    at,
		})
	}
	return out
}

func toBSON(f catalog.Fields) bson.D {
	if len(f) == 0 {
		return nil
	}
	d := make(bson.D, 0, len(f))
	for _, kv := range f {
		d = append(d, bson.E{Key: kv.Key, Value: toBSONValue(kv.Value)})
	}
	return d
}

func toBSONValue(v any) any {
	switch v := v.(type) {
	case catalog.Fields:
		return toBSON(v)
	case []any:
		a := make(bson.A, len(v))
		for i, x := range v {
			a[i] = toBSONValue(x)
		}
		return a
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	default:
		return v
	}
}
