// Package v1 holds the HTTP handlers. Each handler validates its input, issues
// one store call and maps the outcome onto a status code.
package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nulzo/project-tracker-api/internal/server/validator"
	"github.com/nulzo/project-tracker-api/internal/store"
	"github.com/nulzo/project-tracker-api/pkg/api"
	"go.uber.org/zap"
)

// pathID parses an integer path parameter. Anything else cannot name a row:
// single-row lookups answer with the resource's 404, listings with [].
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bind decodes and validates the JSON body. On failure it attaches the
// resource's required-fields error and returns false.
func bind(c *gin.Context, logger *zap.Logger, r resource, op operation, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		logger.Debug("Rejected request body",
			zap.String("resource", string(r)),
			zap.String("operation", string(op)),
			zap.Any("fields", validator.ParseValidationError(err)),
		)
		_ = c.Error(validationError(r, op, err))
		return false
	}
	return true
}

// lookupError maps store.ErrNotFound to 404 and anything else to the 500 for op.
func lookupError(r resource, op operation, err error) *api.Error {
	if errors.Is(err, store.ErrNotFound) {
		return notFoundError(r)
	}
	return storeError(r, op, err)
}

// respondDeleted writes the resource's delete policy.
func respondDeleted(c *gin.Context, r resource) {
	policy := deletes[r]
	if policy.message == "" {
		c.Status(policy.status)
		return
	}
	c.JSON(policy.status, api.MessageResponse{Message: policy.message})
}
