package lbunit_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leafbridge/leafbridge-hello/lbunit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "db.yaml")
	source := lbunit.EndpointFile{Path: path}

	_, available, err := source.Endpoint(ctx)
	require.NoError(t, err)
	assert.False(t, available, "a missing file means the database is not available")

	require.NoError(t, os.WriteFile(path, []byte("host: db.internal\ndbname: hello\n"), 0o600))
	_, available, err = source.Endpoint(ctx)
	require.NoError(t, err)
	assert.False(t, available, "incomplete relation data means the database is not available")

	require.NoError(t, os.WriteFile(path, []byte(`{"host": "db.internal", "port": 5432, "dbname": "hello", "user": "hello", "password": "s3cret"}`), 0o600))
	endpoint, available, err := source.Endpoint(ctx)
	require.NoError(t, err)
	assert.True(t, available)
	assert.Equal(t, "db.internal:5432", endpoint.Address())
	assert.Equal(t, "s3cret", endpoint.Password)

	require.NoError(t, os.WriteFile(path, []byte("host: [unterminated"), 0o600))
	_, _, err = source.Endpoint(ctx)
	assert.Error(t, err)
}

func TestStatusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	sink := lbunit.StatusFile{Path: path}

	status, err := lbunit.ReadStatus(path)
	require.NoError(t, err)
	assert.Empty(t, status.Tag)

	require.NoError(t, sink.SetStatus(lbunit.StatusBlocked, "A PostgreSQL database is required"))
	require.NoError(t, sink.OpenPort(8000, "tcp"))
	require.NoError(t, sink.OpenPort(8000, "tcp"))
	require.NoError(t, sink.SetStatus(lbunit.StatusActive, "The app is running."))

	status, err = lbunit.ReadStatus(path)
	require.NoError(t, err)
	assert.Equal(t, lbunit.StatusActive, status.Tag)
	assert.Equal(t, "The app is running.", status.Message)
	assert.Equal(t, []lbunit.Port{{Number: 8000, Protocol: "tcp"}}, status.Ports)
	assert.False(t, status.Updated.IsZero())

	assert.Error(t, sink.SetStatus("error", "nope"))
	assert.Error(t, sink.OpenPort(0, "tcp"))
}
