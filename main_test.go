package main

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmanager/config"
	"eventmanager/logging"
)

func TestMongoDatabase(t *testing.T) {
	assert.Equal(t, "event-manager-dev",
		mongoDatabase(config.Config{}, "mongodb://localhost:27017/event-manager-dev"))
	assert.Equal(t, "override",
		mongoDatabase(config.Config{MongoDatabase: "override"}, "mongodb://localhost:27017/event-manager-dev"))
	assert.Equal(t, defaultMongoDatabase,
		mongoDatabase(config.Config{}, "mongodb://localhost:27017"))
	assert.Equal(t, defaultMongoDatabase,
		mongoDatabase(config.Config{}, "not a uri"))
}

func TestServeClosedServerIsNotAnError(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	require.NoError(t, srv.Close())

	assert.NoError(t, serve(context.Background(), srv, logging.Discard()))
}

func TestServeStopsOnCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, serve(ctx, srv, logging.Discard()))
}

func TestServeReportsListenErrors(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:-1", Handler: http.NotFoundHandler()}

	assert.Error(t, serve(context.Background(), srv, logging.Discard()))
}
