// Package store persists saved websites and their share records.
package store

import (
	"errors"
	"time"

	"ice_ai_server/internal/types"
)

var (
	ErrNotFound  = errors.New("website not found")
	ErrForbidden = errors.New("website belongs to another user")
)

// Website is one saved generation result.
type Website struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Name      string                  `json:"name"`
	Prompt    string                  `json:"prompt"`
	Project   *types.GeneratedProject `json:"project"`
	CreatedAt time.Time               `json:"createdAt"`
}

// ShareRecord maps a public token to a saved website.
type ShareRecord struct {
	Token     string    `json:"token"`
	WebsiteID string    `json:"websiteId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProjectStore is the persistence collaborator for saved websites. The
// production deployment backs this with a relational store; this service only
// depends on the interface.
type ProjectStore interface {
	Save(userID, name, prompt string, project *types.GeneratedProject) (*Website, error)
	Get(userID, id string) (*Website, error)
	ListByUser(userID string) ([]*Website, error)
	Delete(userID, id string) error
	Share(userID, id string) (*ShareRecord, error)
	GetShared(token string) (*Website, error)
}
