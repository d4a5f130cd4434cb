package api

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/concave-dev/batchd/internal/batching"
	"github.com/gin-gonic/gin"
)

func echoExecutor() batching.Executor {
	return batching.ExecutorFunc(func(ctx context.Context, payloads []batching.Payload) ([]batching.Outcome, error) {
		out := make([]batching.Outcome, len(payloads))
		for i, p := range payloads {
			out[i] = batching.Outcome{Value: p.Name}
		}
		return out, nil
	})
}

// newTestConfig returns a valid Config backed by a started batcher.
func newTestConfig(t *testing.T) *Config {
	t.Helper()

	cfg := batching.DefaultConfig()
	cfg.MaxWait = 20 * time.Millisecond
	b, err := batching.New(cfg, echoExecutor())
	if err != nil {
		t.Fatalf("batching.New() error = %v", err)
	}
	b.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = b.DrainAndStop(ctx)
	})

	config := DefaultConfig()
	config.Tasks = b
	config.MaxStatusWait = 2 * time.Second
	return config
}

// newTestServer returns a server on an ephemeral loopback listener and a
// router built the way Start builds it.
func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test listener: %v", err)
	}
	t.Cleanup(func() { listener.Close() })

	server, err := NewServerWithListener(newTestConfig(t), listener)
	if err != nil {
		t.Fatalf("NewServerWithListener() error = %v", err)
	}
	return server, server.router()
}
