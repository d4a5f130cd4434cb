package daemon

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/concave-dev/batchd/cmd/batchd/config"
	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/executor"
)

// freePort asks the OS for a port and releases it for the daemon to bind.
func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find free port: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}

func setTestConfig(t *testing.T, port int) {
	t.Helper()

	batchConfig := batching.DefaultConfig()
	batchConfig.MaxWait = 20 * time.Millisecond

	config.Global = config.Config{
		APIAddr:         "127.0.0.1",
		APIPort:         port,
		LogLevel:        "INFO",
		ShutdownTimeout: 5 * time.Second,
		MaxStatusWait:   2 * time.Second,
		Batching:        *batchConfig,
		Executor:        *executor.DefaultConfig(),
	}
}

func TestBuildAPIConfig(t *testing.T) {
	setTestConfig(t, 9999)

	apiConfig := buildAPIConfig(nil)
	if apiConfig.BindAddr != "127.0.0.1" || apiConfig.BindPort != 9999 {
		t.Errorf("buildAPIConfig() bind = %s:%d, want 127.0.0.1:9999", apiConfig.BindAddr, apiConfig.BindPort)
	}
	if apiConfig.MaxStatusWait != 2*time.Second {
		t.Errorf("buildAPIConfig() MaxStatusWait = %s, want 2s", apiConfig.MaxStatusWait)
	}
}

func TestRun_ServesAndDrainsOnSignal(t *testing.T) {
	port := freePort(t)
	setTestConfig(t, port)

	sigCh := make(chan os.Signal, 2)
	errCh := make(chan error, 1)
	go func() { errCh <- run(sigCh) }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	client := &http.Client{Timeout: 2 * time.Second}

	// Wait for the API to come up
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := client.Get(base + "/api/v1/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			t.Fatalf("API did not become healthy: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	resp, err := client.Post(base+"/api/v1/tasks", "application/json",
		strings.NewReader(`{"task_name":"hello","task_data":{"a":1}}`))
	if err != nil {
		t.Fatalf("submit error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("submit status = %d, want %d", resp.StatusCode, http.StatusAccepted)
	}

	sigCh <- syscall.SIGTERM

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("run() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("run() did not return after signal")
	}

	// Listener is released after shutdown
	l, err := net.Listen("tcp4", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		t.Errorf("port %d still bound after shutdown: %v", port, err)
	} else {
		l.Close()
	}
}

func TestRun_PortInUse(t *testing.T) {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create listener: %v", err)
	}
	defer l.Close()

	setTestConfig(t, l.Addr().(*net.TCPAddr).Port)

	if err := run(make(chan os.Signal)); err == nil {
		t.Error("run() should fail when the API port is taken")
	}
}

func TestRun_InvalidExecutor(t *testing.T) {
	setTestConfig(t, freePort(t))
	config.Global.Executor.Kind = "grpc"

	if err := run(make(chan os.Signal)); err == nil {
		t.Error("run() should fail with an unknown executor kind")
	}
}
