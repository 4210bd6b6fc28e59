package bootstrap_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go-payroll/internal/bootstrap"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAudit struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, entry.Action)
}

func TestRunHTTPServer_GracefulShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	audit := &recordingAudit{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- bootstrap.RunHTTPServer(ctx, gin.New(), bootstrap.ServerConfig{Port: "0"}, audit)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"SERVER_START", "SERVER_SHUTDOWN"}, audit.actions)
}

func TestRunHTTPServer_ListenError(t *testing.T) {
	err := bootstrap.RunHTTPServer(context.Background(), gin.New(), bootstrap.ServerConfig{Port: "not-a-port"}, &recordingAudit{})
	assert.Error(t, err)
}
