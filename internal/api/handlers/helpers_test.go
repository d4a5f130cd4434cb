package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/concave-dev/batchd/internal/batching"
	"github.com/gin-gonic/gin"
)

// gatedExecutor echoes task names once its gate channel is closed.
type gatedExecutor struct {
	gate chan struct{}
	once sync.Once
}

func newGatedExecutor() *gatedExecutor {
	return &gatedExecutor{gate: make(chan struct{})}
}

func (g *gatedExecutor) open() {
	g.once.Do(func() { close(g.gate) })
}

func (g *gatedExecutor) Execute(ctx context.Context, payloads []batching.Payload) ([]batching.Outcome, error) {
	<-g.gate
	out := make([]batching.Outcome, len(payloads))
	for i, p := range payloads {
		out[i] = batching.Outcome{Value: "done:" + p.Name}
	}
	return out, nil
}

// newTestBatcher builds a started batcher whose time trigger never fires
// during a test, so tasks stay queued until flushed or drained.
func newTestBatcher(t *testing.T, capacity int, exec batching.Executor) *batching.Batcher {
	t.Helper()

	b, err := batching.New(&batching.Config{
		QueueCapacity:   capacity,
		MaxBatchSize:    100,
		MaxWait:         time.Minute,
		ResultRetention: 100,
	}, exec)
	if err != nil {
		t.Fatalf("batching.New() error = %v", err)
	}
	b.Start()

	t.Cleanup(func() {
		if g, ok := exec.(*gatedExecutor); ok {
			g.open()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.DrainAndStop(ctx); err != nil {
			t.Errorf("DrainAndStop() error = %v", err)
		}
	})
	return b
}

// fakeService returns canned errors for paths a real batcher can't easily reach.
type fakeService struct {
	submitErr error
	flushErr  error
	stats     batching.Stats
}

func (f *fakeService) Submit(p batching.Payload) (*batching.Handle, error) {
	return nil, f.submitErr
}

func (f *fakeService) Lookup(id string) (*batching.Handle, bool) {
	return nil, false
}

func (f *fakeService) Flush(ctx context.Context) (batching.FlushResult, error) {
	return batching.FlushResult{}, f.flushErr
}

func (f *fakeService) Stats() batching.Stats {
	return f.stats
}

func newRouter(svc TaskService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/tasks", HandleSubmitTask(svc))
	router.GET("/tasks/:id", HandleGetTask(svc, 2*time.Second))
	router.POST("/flush", HandleFlush(svc))
	router.GET("/stats", HandleStats(svc))
	router.GET("/health", HandleHealth(svc, "1.0.0", time.Now()))
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return v
}

func mustDuration(t *testing.T, s string) time.Duration {
	t.Helper()

	d, err := time.ParseDuration(s)
	if err != nil {
		t.Fatalf("ParseDuration(%q) error = %v", s, err)
	}
	return d
}
