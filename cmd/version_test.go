package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestIsOutdated(t *testing.T) {
	outdated, err := isOutdated("v1.2.0", "v1.10.0")
	require.NoError(t, err)
	assert.True(t, outdated)

	outdated, err = isOutdated("1.10.0", "v1.10.0")
	require.NoError(t, err)
	assert.False(t, outdated)

	_, err = isOutdated("dev", "v1.0.0")
	assert.Error(t, err)
}

func TestCheckForUpdates_WarnsWhenBehind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/nulzo/project-tracker-api/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"tag_name":"v9.0.0"}`))
	}))
	defer srv.Close()

	prevURL, prevVersion := releaseURL, AppVersion
	releaseURL = srv.URL + "/repos/%s/releases/latest"
	AppVersion = "v1.0.0"
	defer func() { releaseURL, AppVersion = prevURL, prevVersion }()

	core, logs := observer.New(zap.DebugLevel)
	CheckForUpdates(context.Background(), "nulzo/project-tracker-api", zap.New(core))

	require.Equal(t, 1, logs.FilterMessage("You are running an outdated version").Len())
}

func TestCheckForUpdates_SilentOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	prevURL := releaseURL
	releaseURL = srv.URL + "/repos/%s/releases/latest"
	defer func() { releaseURL = prevURL }()

	core, logs := observer.New(zap.WarnLevel)
	CheckForUpdates(context.Background(), "nulzo/project-tracker-api", zap.New(core))

	assert.Zero(t, logs.Len())
}
