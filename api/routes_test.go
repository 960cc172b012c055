package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ice_ai_server/config"
	internalapi "ice_ai_server/internal/api"
	"ice_ai_server/internal/credits"
	"ice_ai_server/internal/generate"
	"ice_ai_server/internal/llm"
	"ice_ai_server/internal/store"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Config{GenerateTimeoutSeconds: 5, OllamaHost: "http://localhost:11434"}
	orch := generate.NewOrchestrator(cfg, llm.New(cfg), nil, nil)
	h := internalapi.NewAPIHandler(orch, credits.NewLedger(10), store.NewMemoryStore())

	router := gin.New()
	RegisterRoutes(router, h)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok": true}`, w.Body.String())
}
