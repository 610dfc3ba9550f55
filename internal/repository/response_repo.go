package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"kudoswall/internal/model"
)

// ResponseRepo handles MongoDB operations for form responses
type ResponseRepo interface {
	Create(ctx context.Context, resp *model.Response) (string, error)
	GetByID(ctx context.Context, id string) (*model.Response, error)
	// GetByFormID returns the form's responses oldest first.
	GetByFormID(ctx context.Context, formID string, includeSpam bool) ([]*model.Response, error)
	SetSpam(ctx context.Context, id string, spam bool) error
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

// EnsureIndexes creates the indexes the response queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("responses").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "formId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("forms").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	return err
}

func (r *responseRepo) Create(ctx context.Context, resp *model.Response) (string, error) {
	if resp.ID == "" {
		resp.ID = newID()
	}
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (r *responseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	var resp model.Response
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&resp)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepo) GetByFormID(ctx context.Context, formID string, includeSpam bool) ([]*model.Response, error) {
	filter := bson.M{"formId": formID}
	if !includeSpam {
		filter["spam"] = bson.M{"$ne": true}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := []*model.Response{}
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) SetSpam(ctx context.Context, id string, spam bool) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"spam": spam}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
