package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auto-explainer/core/internal/models"
	"github.com/auto-explainer/core/internal/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the mongo collection holding project records.
const CollectionName = "project"

// Store persists project records.
type Store interface {
	Create(ctx context.Context, p *models.Project) (string, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context, limit int64) ([]models.Project, error)
	UpdateOutputs(ctx context.Context, id string, outputs models.Outputs) error
	UpdateAfterRegenerate(ctx context.Context, id string, tone models.Tone, outputs models.Outputs) error
}

type projectDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	models.Project `bson:",inline"`
}

func (d *projectDocument) toModel() models.Project {
	p := d.Project
	p.ID = d.ID.Hex()
	return p
}

// MongoStore is the Store backed by a mongo collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// Create inserts p, stamps CreatedAt when unset and writes the new id back to p.ID.
func (s *MongoStore) Create(ctx context.Context, p *models.Project) (string, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	doc := projectDocument{ID: primitive.NewObjectID(), Project: *p}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("insert project: %w", err)
	}
	p.ID = doc.ID.Hex()
	return p.ID, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	var doc projectDocument
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	p := doc.toModel()
	return &p, nil
}

// List returns up to limit records in the collection's natural order.
// A non-positive limit returns every record.
func (s *MongoStore) List(ctx context.Context, limit int64) ([]models.Project, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var docs []projectDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	out := make([]models.Project, len(docs))
	for i := range docs {
		out[i] = docs[i].toModel()
	}
	return out, nil
}

func (s *MongoStore) UpdateOutputs(ctx context.Context, id string, outputs models.Outputs) error {
	return s.set(ctx, id, bson.M{"outputs": outputs})
}

func (s *MongoStore) UpdateAfterRegenerate(ctx context.Context, id string, tone models.Tone, outputs models.Outputs) error {
	return s.set(ctx, id, bson.M{"tone": tone, "outputs": outputs})
}

func (s *MongoStore) set(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	fields["updated_at"] = time.Now().UTC()
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
