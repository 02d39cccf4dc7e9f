package api

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-backend/models"
	"portfolio-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	contactHandler contactHandler
	healthHandler  healthHandler
}

// ProjectStore is the persistence surface the project handler depends on.
type ProjectStore interface {
	FindAll(ctx context.Context) ([]*models.Project, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MediaUploader is the media-store surface the project handler depends on.
type MediaUploader interface {
	Upload(ctx context.Context, kind services.AssetKind, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, rawURL string) error
}

// MailSender is the relay surface the contact handler depends on.
type MailSender interface {
	Configured() bool
	Send(ctx context.Context, sub services.ContactSubmission) error
}

// Pinger reports database connectivity for the health routes.
type Pinger interface {
	Ping(ctx context.Context) error
}
