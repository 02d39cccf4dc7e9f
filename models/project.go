package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Project statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Project represents a portfolio entry with media links and metadata
type Project struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title              string             `json:"title" bson:"title"`
	Description        string             `json:"description,omitempty" bson:"description,omitempty"`
	Category           string             `json:"category,omitempty" bson:"category,omitempty"`
	ImageURL           *string            `json:"imageUrl" bson:"imageUrl"`
	VideoURL           *string            `json:"videoUrl" bson:"videoUrl"`
	Link               string             `json:"link,omitempty" bson:"link,omitempty"`
	Status             string             `json:"status" bson:"status"`
	FrontendGithubLink *string            `json:"frontendGithubLink" bson:"frontendGithubLink"`
	BackendGithubLink  *string            `json:"backendGithubLink" bson:"backendGithubLink"`
	ProjectDescription string             `json:"projectDescription" bson:"projectDescription"`
}

// IsValidStatus reports whether s is one of the enumerated project statuses.
func IsValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}
