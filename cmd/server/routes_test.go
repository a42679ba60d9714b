package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lbliii/milodocs/internal/assistant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssistant struct{}

func (stubAssistant) Ask(_ context.Context, req assistant.AskRequest) (string, error) {
	return "answer: " + req.Query, nil
}

func (stubAssistant) Summarize(_ context.Context, text string) (string, error) {
	return "summary: " + text, nil
}

func newTestRouter(limit gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, stubAssistant{}, limit)

	return r
}

func passThrough(c *gin.Context) { c.Next() }

func TestRoutes(t *testing.T) {
	r := newTestRouter(passThrough)

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/ask?query=hi", `"answer":"answer: hi"`},
		{http.MethodPost, "/api/v1/summarize", `"summarization":"summary: There is no article to summarize."`},
		{http.MethodGet, "/ask", `"answer":"answer: What is Hugo?"`},
		{http.MethodGet, "/summarize?context=abc", `"summarization":"summary: abc"`},
		{http.MethodGet, "/health", `"service":"milodocs"`},
		{http.MethodGet, "/ping", "pong"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestCORS(t *testing.T) {
	r := newTestRouter(passThrough)

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/ask", nil)
		req.Header.Set("Origin", "https://docs.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("simple request", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(`{"query":"q"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", "https://docs.example.com")

		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRoutes_LimitAppliesToAPIOnly(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }
	r := newTestRouter(deny)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ask", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
