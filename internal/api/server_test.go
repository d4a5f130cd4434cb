package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

// TestNewServer tests NewServer creation
func TestNewServer(t *testing.T) {
	config := newTestConfig(t)
	server := NewServer(config)

	if server.bindAddr != config.BindAddr {
		t.Errorf("NewServer() bindAddr = %q, want %q", server.bindAddr, config.BindAddr)
	}
	if server.bindPort != config.BindPort {
		t.Errorf("NewServer() bindPort = %d, want %d", server.bindPort, config.BindPort)
	}
	if server.tasks != config.Tasks {
		t.Error("NewServer() did not set tasks correctly")
	}
	if server.startTime.IsZero() {
		t.Error("NewServer() startTime not set")
	}
}

// TestNewServer_NilConfig tests NewServer with nil config
func TestNewServer_NilConfig(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewServer() with nil config should panic")
		}
	}()

	NewServer(nil)
}

// TestNewServerWithListener tests listener validation and port pickup
func TestNewServerWithListener(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to create test listener: %v", err)
	}
	defer listener.Close()

	if _, err := NewServerWithListener(newTestConfig(t), nil); err == nil {
		t.Error("NewServerWithListener(nil listener) should fail")
	}

	bad := newTestConfig(t)
	bad.Tasks = nil
	if _, err := NewServerWithListener(bad, listener); err == nil {
		t.Error("NewServerWithListener() with invalid config should fail")
	}

	server, err := NewServerWithListener(newTestConfig(t), listener)
	if err != nil {
		t.Fatalf("NewServerWithListener() error = %v", err)
	}
	if want := listener.Addr().(*net.TCPAddr).Port; server.bindPort != want {
		t.Errorf("bindPort = %d, want listener port %d", server.bindPort, want)
	}
}

// TestServer_HandlerFactories tests that handler factory methods return non-nil functions
func TestServer_HandlerFactories(t *testing.T) {
	server := NewServer(newTestConfig(t))

	factories := map[string]func() any{
		"index":  func() any { return server.getHandlerIndex() },
		"health": func() any { return server.getHandlerHealth() },
		"submit": func() any { return server.getHandlerSubmitTask() },
		"get":    func() any { return server.getHandlerGetTask() },
		"flush":  func() any { return server.getHandlerFlush() },
		"stats":  func() any { return server.getHandlerStats() },
	}
	for name, factory := range factories {
		if factory() == nil {
			t.Errorf("getHandler %s returned nil", name)
		}
	}
}

// TestServer_StartAndShutdown serves a real request over the pre-bound listener
func TestServer_StartAndShutdown(t *testing.T) {
	server, _ := newTestServer(t)

	if err := server.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	url := "http://" + server.listener.Addr().String()
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Post(url+"/api/v1/tasks", "application/json",
		strings.NewReader(`{"task_name":"ping","task_data":{}}`))
	if err != nil {
		t.Fatalf("POST /api/v1/tasks error = %v", err)
	}
	var submitted struct {
		TaskID string `json:"task_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("submit status = %d, want %d", resp.StatusCode, http.StatusAccepted)
	}

	resp, err = client.Get(url + "/api/v1/tasks/" + submitted.TaskID + "?wait=2s")
	if err != nil {
		t.Fatalf("GET task error = %v", err)
	}
	var task struct {
		Status string `json:"status"`
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		t.Fatalf("decode task response: %v", err)
	}
	resp.Body.Close()
	if task.Status != "succeeded" || task.Result != "ping" {
		t.Errorf("task = %+v, want succeeded with result ping", task)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

// TestServer_ShutdownBeforeStart closes the pre-bound listener
func TestServer_ShutdownBeforeStart(t *testing.T) {
	server, _ := newTestServer(t)

	if err := server.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() before Start error = %v", err)
	}
}
