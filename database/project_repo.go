package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"portfolio-backend/errs"
	"portfolio-backend/models"
)

type ProjectRepo struct {
	collection *mongo.Collection
}

// NewProjectRepo wraps the projects collection. A nil collection produces a
// repo whose operations fail with the connection sentinel.
func NewProjectRepo(collection *mongo.Collection) *ProjectRepo {
	return &ProjectRepo{collection}
}

// FindAll returns all projects in storage-natural order
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	if r.collection == nil {
		return nil, errs.ErrDatabaseConnection
	}

	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var projects []*models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// FindByID returns a project by its ID, or (nil, nil) when no document matches
func (r *ProjectRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	if r.collection == nil {
		return nil, errs.ErrDatabaseConnection
	}

	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project and assigns its system-generated ID
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	if r.collection == nil {
		return errs.ErrDatabaseConnection
	}

	res, err := r.collection.InsertOne(ctx, project)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		project.ID = id
	}
	return nil
}

// Update replaces an existing project document by id
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if r.collection == nil {
		return errs.ErrDatabaseConnection
	}

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	return err
}

// Delete removes a project by id. Deleting an absent id is not an error.
func (r *ProjectRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if r.collection == nil {
		return errs.ErrDatabaseConnection
	}

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
