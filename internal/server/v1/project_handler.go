package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/project-tracker-api/internal/store"
	"github.com/nulzo/project-tracker-api/internal/store/model"
	"github.com/nulzo/project-tracker-api/pkg/api"
	"go.uber.org/zap"
)

// recentProjectsLimit is the size of the dashboard's recent projects list.
const recentProjectsLimit = 3

type ProjectHandler struct {
	repo   store.ProjectRepository
	logger *zap.Logger
}

func NewProjectHandler(repo store.ProjectRepository, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{repo: repo, logger: logger}
}

// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.repo.List(c.Request.Context())
	if err != nil {
		_ = c.Error(storeError(projectResource, opList, err))
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GET /projects/count
func (h *ProjectHandler) Count(c *gin.Context) {
	n, err := h.repo.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(storeError(projectResource, opCount, err))
		return
	}
	c.JSON(http.StatusOK, api.CountResponse{TotalCount: n})
}

// Recent returns the three newest projects, each with its client's id and name.
//
// GET /projects/recent
func (h *ProjectHandler) Recent(c *gin.Context) {
	projects, err := h.repo.Recent(c.Request.Context(), recentProjectsLimit)
	if err != nil {
		_ = c.Error(storeError(projectResource, opRecent, err))
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		_ = c.Error(notFoundError(projectResource))
		return
	}

	project, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(lookupError(projectResource, opGet, err))
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListByClient answers 200 with an empty array whenever no project matches,
// including unknown clients and ids that cannot name a row.
//
// GET /projects/client/:client_id
func (h *ProjectHandler) ListByClient(c *gin.Context) {
	clientID, ok := pathID(c, "client_id")
	if !ok {
		c.JSON(http.StatusOK, []model.Project{})
		return
	}

	projects, err := h.repo.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		_ = c.Error(storeError(projectResource, opListByParent, err))
		return
	}
	c.JSON(http.StatusOK, projects)
}

// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req api.CreateProjectRequest
	if !bind(c, h.logger, projectResource, opCreate, &req) {
		return
	}

	project, err := h.repo.Create(c.Request.Context(), req.Fields())
	if err != nil {
		_ = c.Error(storeError(projectResource, opCreate, err))
		return
	}
	c.JSON(http.StatusCreated, project)
}

// Update replaces every editable column of an existing project.
//
// PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req api.UpdateProjectRequest
	if !bind(c, h.logger, projectResource, opUpdate, &req) {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		_ = c.Error(notFoundError(projectResource))
		return
	}

	project, err := h.repo.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		_ = c.Error(lookupError(projectResource, opUpdate, err))
		return
	}
	c.JSON(http.StatusOK, project)
}

// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		_ = c.Error(notFoundError(projectResource))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(lookupError(projectResource, opDelete, err))
		return
	}
	respondDeleted(c, projectResource)
}
