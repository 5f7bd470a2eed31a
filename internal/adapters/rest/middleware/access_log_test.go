package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []entry
}

func (l *recordingLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry{level: level, msg: msg, args: args})
}

func (l *recordingLogger) Debug(_ context.Context, msg string, args ...any) {
	l.record("debug", msg, args)
}

func (l *recordingLogger) Info(_ context.Context, msg string, args ...any) {
	l.record("info", msg, args)
}

func (l *recordingLogger) Warn(_ context.Context, msg string, args ...any) {
	l.record("warn", msg, args)
}

func (l *recordingLogger) Error(_ context.Context, msg string, args ...any) {
	l.record("error", msg, args)
}

func argValue(args []any, key string) any {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1]
		}
	}
	return nil
}

func TestAccessLog(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{name: "success", status: http.StatusOK, level: "info"},
		{name: "client error", status: http.StatusForbidden, level: "warn"},
		{name: "server error", status: http.StatusInternalServerError, level: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			handler := AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/v1/roles/abc", nil))

			require.Len(t, log.entries, 1)
			assert.Equal(t, tt.level, log.entries[0].level)
			assert.Equal(t, "http request", log.entries[0].msg)
			assert.Equal(t, tt.status, argValue(log.entries[0].args, "status"))
			assert.Equal(t, http.MethodDelete, argValue(log.entries[0].args, "method"))
			assert.Equal(t, "/api/v1/roles/abc", argValue(log.entries[0].args, "path"))
		})
	}
}

func TestAccessLog_ImplicitOK(t *testing.T) {
	log := &recordingLogger{}
	handler := AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, log.entries, 1)
	assert.Equal(t, http.StatusOK, argValue(log.entries[0].args, "status"))
}
