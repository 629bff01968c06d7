// Package store defines the persistence contracts used by the HTTP handlers.
//
// Each repository method issues exactly one query against the relational store.
package store

import (
	"context"
	"errors"

	"github.com/nulzo/project-tracker-api/internal/store/model"
)

// ErrNotFound is returned when a lookup, update or delete targets a missing row.
var ErrNotFound = errors.New("store: row not found")

// Repository is the main contract for the data layer.
type Repository interface {
	Clients() ClientRepository
	Projects() ProjectRepository
	Tasks() TaskRepository

	// Ping checks connectivity to the underlying database.
	Ping(ctx context.Context) error

	Close() error
}

type ClientRepository interface {
	// List returns every client, newest first.
	List(ctx context.Context) ([]model.Client, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (*model.Client, error)
	Create(ctx context.Context, fields model.ClientFields) (*model.Client, error)
	// Update replaces the editable columns and returns the stored row.
	Update(ctx context.Context, id int64, fields model.ClientFields) (*model.Client, error)
	Delete(ctx context.Context, id int64) error
}

type ProjectRepository interface {
	// List returns every project, newest first.
	List(ctx context.Context) ([]model.Project, error)
	Count(ctx context.Context) (int64, error)
	// Recent returns the newest projects joined with their client's id and name.
	Recent(ctx context.Context, limit int) ([]model.RecentProject, error)
	Get(ctx context.Context, id int64) (*model.Project, error)
	// ListByClient returns an empty slice, never ErrNotFound, when nothing matches.
	ListByClient(ctx context.Context, clientID int64) ([]model.Project, error)
	Create(ctx context.Context, fields model.ProjectFields) (*model.Project, error)
	Update(ctx context.Context, id int64, fields model.ProjectFields) (*model.Project, error)
	Delete(ctx context.Context, id int64) error
}

type TaskRepository interface {
	// List returns every task, newest first.
	List(ctx context.Context) ([]model.Task, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Get(ctx context.Context, id int64) (*model.Task, error)
	// ListByProject returns an empty slice, never ErrNotFound, when nothing matches.
	ListByProject(ctx context.Context, projectID int64) ([]model.Task, error)
	Create(ctx context.Context, fields model.TaskFields) (*model.Task, error)
	Update(ctx context.Context, id int64, fields model.TaskFields) (*model.Task, error)
	Delete(ctx context.Context, id int64) error
}
