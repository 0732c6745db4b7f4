// Package store persists named projects for serve mode.
//
// A project is a plan plus bookkeeping timestamps, addressed by a UUID. Two
// backends implement [Store]: an in-memory map for development and tests,
// and MongoDB for durable multi-instance deployments. The computed schedule
// and layout are never stored - they are disposable and recomputed from the
// plan on demand.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mbertsch/critpath/pkg/plan"
)

// ErrNotFound is returned when a project ID does not exist.
var ErrNotFound = errors.New("project not found")

// Project is a stored plan with its identity and timestamps.
type Project struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Plan      plan.Plan `json:"plan" bson:"plan"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewProject creates a project with a fresh UUID and timestamps.
func NewProject(name string, p plan.Plan) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		Plan:      p,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the persistence interface for projects.
type Store interface {
	// Get returns the project with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Project, error)
	// Put inserts or replaces a project by ID.
	Put(ctx context.Context, p *Project) error
	// List returns all projects.
	List(ctx context.Context) ([]*Project, error)
	// Delete removes a project; deleting a missing ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	// Close releases backend resources.
	Close(ctx context.Context) error
}
