package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/project-tracker-api/internal/store"
	"github.com/nulzo/project-tracker-api/pkg/api"
	"go.uber.org/zap"
)

type ClientHandler struct {
	repo   store.ClientRepository
	logger *zap.Logger
}

func NewClientHandler(repo store.ClientRepository, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{repo: repo, logger: logger}
}

// List returns every client, newest first.
//
// GET /clients
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.repo.List(c.Request.Context())
	if err != nil {
		_ = c.Error(storeError(clientResource, opList, err))
		return
	}
	c.JSON(http.StatusOK, clients)
}

// Count returns the number of clients.
//
// GET /clients/count
func (h *ClientHandler) Count(c *gin.Context) {
	n, err := h.repo.Count(c.Request.Context())
	if err != nil {
		_ = c.Error(storeError(clientResource, opCount, err))
		return
	}
	c.JSON(http.StatusOK, api.CountResponse{TotalCount: n})
}

// GET /clients/:id
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		_ = c.Error(notFoundError(clientResource))
		return
	}

	client, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(lookupError(clientResource, opGet, err))
		return
	}
	c.JSON(http.StatusOK, client)
}

// POST /clients
func (h *ClientHandler) Create(c *gin.Context) {
	var req api.ClientRequest
	if !bind(c, h.logger, clientResource, opCreate, &req) {
		return
	}

	client, err := h.repo.Create(c.Request.Context(), req.Fields())
	if err != nil {
		_ = c.Error(storeError(clientResource, opCreate, err))
		return
	}
	c.JSON(http.StatusCreated, client)
}

// Update replaces name, email and phone of an existing client.
//
// PUT /clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	var req api.ClientRequest
	if !bind(c, h.logger, clientResource, opUpdate, &req) {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		_ = c.Error(notFoundError(clientResource))
		return
	}

	client, err := h.repo.Update(c.Request.Context(), id, req.Fields())
	if err != nil {
		_ = c.Error(lookupError(clientResource, opUpdate, err))
		return
	}
	c.JSON(http.StatusOK, client)
}

// DELETE /clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		_ = c.Error(notFoundError(clientResource))
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(lookupError(clientResource, opDelete, err))
		return
	}
	respondDeleted(c, clientResource)
}
