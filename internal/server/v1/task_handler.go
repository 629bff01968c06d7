package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/project-tracker-api/internal/store"
	"github.com/nulzo/project-tracker-api/internal/store/model"
	"github.com/nulzo/project-tracker-api/pkg/api"
	"go.uber.org/zap"
)

type TaskHandler struct {
	repo   store.TaskRepository
	logger *zap.Logger
}

func NewTaskHandler(repo store.TaskRepository, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{repo: repo, logger: logger}
}

// GET /tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.repo.List(c.Request.Context())
	if err != nil {
		_ = c.Error(storeError(taskResource, opList, err))
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/count
func (h *TaskHandler) Count(c *gin.Context) {
	n, err := h.repo.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(storeError(taskResource, opCount, err))
		return
	}
	c.JSON(http.StatusOK, api.CountResponse{TotalCount: n})
}

// Overview returns the total task count and the number of tasks in progress.
// The two counts are separate queries and are not read from one snapshot.
//
// GET /tasks/overview
func (h *TaskHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := h.repo.Count(ctx)
	if err != nil {
		_ = c.Error(storeError(taskResource, opOverview, err))
		return
	}

	inProgress, err := h.repo.CountByStatus(ctx, model.TaskStatusInProgress)
	if err != nil {
		_ = c.Error(storeError(taskResource, opOverview, err))
		return
	}

	c.JSON(http.StatusOK, api.OverviewResponse{Total: total, InProgress: inProgress})
}

// GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		_ = c.Error(notFoundError(taskResource))
		return
	}

	task, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(lookupError(taskResource, opGet, err))
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListByProject answers 200 with an empty array when nothing matches,
// including ids that cannot name a row.
//
// GET /tasks/project/:project_id
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		c.JSON(http.StatusOK, []model.Task{})
		return
	}

	tasks, err := h.repo.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		_ = c.Error(storeError(taskResource, opListByParent, err))
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req api.CreateTaskRequest
	if !bind(c, h.logger, taskResource, opCreate, &req) {
		return
	}

	task, err := h.repo.Create(c.Request.Context(), req.Fields())
	if err != nil {
		_ = c.Error(storeError(taskResource, opCreate, err))
		return
	}
	c.JSON(http.StatusCreated, task)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var req api.UpdateTaskRequest
	if !bind(c, h.logger, taskResource, opUpdate, &req) {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		_ = c.Error(notFoundError(taskResource))
		return
	}

	task, err := h.repo.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		_ = c.Error(lookupError(taskResource, opUpdate, err))
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		_ = c.Error(notFoundError(taskResource))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(lookupError(taskResource, opDelete, err))
		return
	}
	respondDeleted(c, taskResource)
}
