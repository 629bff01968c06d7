package v1

import (
	"net/http"

	"github.com/nulzo/project-tracker-api/pkg/api"
)

type resource string

const (
	clientResource  resource = "clients"
	projectResource resource = "projects"
	taskResource    resource = "tasks"
)

type operation string

const (
	opList         operation = "list"
	opCount        operation = "count"
	opRecent       operation = "recent"
	opOverview     operation = "overview"
	opGet          operation = "get"
	opListByParent operation = "list_by_parent"
	opCreate       operation = "create"
	opUpdate       operation = "update"
	opDelete       operation = "delete"
)

// failures holds the "<operation> <resource>" part of every 500 message.
var failures = map[resource]map[operation]string{
	clientResource: {
		opList:   "fetch clients",
		opCount:  "fetch clients count",
		opGet:    "fetch client",
		opCreate: "create client",
		opUpdate: "update client",
		opDelete: "delete client",
	},
	projectResource: {
		opList:         "fetch projects",
		opCount:        "fetch projects count",
		opRecent:       "fetch recent projects",
		opGet:          "fetch project",
		opListByParent: "fetch projects by client",
		opCreate:       "create project",
		opUpdate:       "update project",
		opDelete:       "delete project",
	},
	taskResource: {
		opList:         "fetch tasks",
		opCount:        "fetch tasks count",
		opOverview:     "fetch tasks overview",
		opGet:          "fetch task",
		opListByParent: "fetch tasks by project",
		opCreate:       "create task",
		opUpdate:       "update task",
		opDelete:       "delete task",
	},
}

// required enumerates the mandatory field set per (resource, operation).
var required = map[resource]map[operation]string{
	clientResource: {
		opCreate: "Name, email, and phone are required",
		opUpdate: "Name, email, and phone are required",
	},
	projectResource: {
		opCreate: "Name, description, and client_id are required",
		opUpdate: "Name, description, client_id, status, start_date, and due_date are required",
	},
	taskResource: {
		opCreate: "Title, description, and project_id are required",
		opUpdate: "Title, description, project_id, status, priority, and deadline are required",
	},
}

var notFound = map[resource]string{
	clientResource:  "Client not found",
	projectResource: "Project not found",
	taskResource:    "Task not found",
}

// deletePolicy is the success response of a delete. Clients answer 204 with no
// body while projects and tasks answer 200 with a confirmation message.
type deletePolicy struct {
	status  int
	message string
}

var deletes = map[resource]deletePolicy{
	clientResource:  {status: http.StatusNoContent},
	projectResource: {status: http.StatusOK, message: "Project deleted successfully"},
	taskResource:    {status: http.StatusOK, message: "Task deleted successfully"},
}

func storeError(r resource, op operation, err error) *api.Error {
	return api.StoreError("Internal Server Error, failed to "+failures[r][op], err)
}

func validationError(r resource, op operation, cause error) *api.Error {
	return api.ValidationError(required[r][op], cause)
}

func notFoundError(r resource) *api.Error {
	return api.NotFoundError(notFound[r])
}
