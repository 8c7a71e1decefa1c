package server

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.Storage = config.StorageMemory
	c.SecretKey = "test-secret"
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCHealthAddr = "127.0.0.1:0"
	return c
}

func TestNewApp_RequiresSecret(t *testing.T) {
	c := memoryConfig()
	c.SecretKey = ""

	_, err := newApp(context.Background(), c, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret")
}

func TestNewApp_UnknownStorage(t *testing.T) {
	c := memoryConfig()
	c.Storage = "etcd"

	_, err := newApp(context.Background(), c, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewApp_GRPCOptional(t *testing.T) {
	c := memoryConfig()
	c.GRPCHealthAddr = ""

	app, err := newApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Nil(t, app.grpcServer)
	assert.NotNil(t, app.httpServer)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	var out bytes.Buffer
	app, err := newApp(context.Background(), memoryConfig(), &out)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}
