package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectRequest_FieldsMapsOptionalToNull(t *testing.T) {
	f := CreateProjectRequest{ClientID: 3, Name: "Site", Description: "Marketing site"}.Fields()

	assert.Equal(t, int64(3), f.ClientID)
	assert.Nil(t, f.Status)
	assert.Nil(t, f.StartDate)
	assert.Nil(t, f.DueDate)
}

func TestUpdateTaskRequest_Fields(t *testing.T) {
	f := UpdateTaskRequest{
		ProjectID:   9,
		Title:       "Launch",
		Description: "Go live",
		Status:      "in_progress",
		Priority:    "high",
		Deadline:    "2025-10-01",
	}.Fields()

	require.NotNil(t, f.Status)
	assert.Equal(t, "in_progress", *f.Status)
	require.NotNil(t, f.Priority)
	assert.Equal(t, "high", *f.Priority)
	require.NotNil(t, f.Deadline)
	assert.Equal(t, "2025-10-01", f.Deadline.String())
}

func TestError_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation \"clients\" does not exist")
	err := StoreError("Internal Server Error, failed to fetch clients", cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "relation")
}
