package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"kudoswall/internal/model"
)

// ErrNotFound is returned by mutations that matched no document.
var ErrNotFound = errors.New("document not found")

// FormRepo handles MongoDB operations for forms
type FormRepo interface {
	Create(ctx context.Context, form *model.Form) (string, error)
	GetByID(ctx context.Context, id string) (*model.Form, error)
	GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Form, error)
	UpdateQuestions(ctx context.Context, id string, questions []string) error
	AppendSuggestion(ctx context.Context, id, suggestion string) error
}

type formRepo struct {
	collection *mongo.Collection
}

// NewFormRepo creates a new form repository
func NewFormRepo(db *mongo.Database) FormRepo {
	return &formRepo{
		collection: db.Collection("forms"),
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func (r *formRepo) Create(ctx context.Context, form *model.Form) (string, error) {
	if form.ID == "" {
		form.ID = newID()
	}
	now := time.Now().UTC()
	form.CreatedAt = now
	form.UpdatedAt = now
	if form.Suggestions == nil {
		form.Suggestions = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, form); err != nil {
		return "", err
	}
	return form.ID, nil
}

func (r *formRepo) GetByID(ctx context.Context, id string) (*model.Form, error) {
	var form model.Form
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&form)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *formRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Form, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	forms := []*model.Form{}
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *formRepo) UpdateQuestions(ctx context.Context, id string, questions []string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"questions": questions, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *formRepo) AppendSuggestion(ctx context.Context, id, suggestion string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"suggestions": suggestion},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
