package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ice_ai_server/internal/credits"
	"ice_ai_server/internal/generate"
	"ice_ai_server/internal/llm"
	"ice_ai_server/internal/preview"
	"ice_ai_server/internal/store"
)

// userIDHeader carries the caller's identity. Authentication itself lives in
// an external identity provider; this service only needs an opaque id.
const userIDHeader = "X-User-ID"

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	orchestrator *generate.Orchestrator
	gate         credits.Gate
	projects     store.ProjectStore
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(orch *generate.Orchestrator, gate credits.Gate, projects store.ProjectStore) *APIHandler {
	return &APIHandler{
		orchestrator: orch,
		gate:         gate,
		projects:     projects,
	}
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Prompt         string `json:"prompt" binding:"required"`
	GenerateImages bool   `json:"generateImages"`
	Model          string `json:"model"`
}

func userID(c *gin.Context) string {
	if id := c.GetHeader(userIDHeader); id != "" {
		return id
	}
	return "anonymous"
}

// --- API Handlers ---

// POST /api/generate-website
func (h *APIHandler) GenerateWebsite(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	uid := userID(c)
	log.Printf("Received generation request from user %s", uid)

	result, err := h.orchestrator.Generate(c.Request.Context(), generate.Request{
		Prompt:         req.Prompt,
		Model:          req.Model,
		GenerateImages: req.GenerateImages,
		UserID:         uid,
	})
	if err != nil {
		log.Printf("Error generating website for user %s: %v", uid, err)
		c.JSON(statusForError(err), gin.H{"error": generate.UserMessage(err)})
		return
	}

	log.Printf("Generated %d files for user %s", len(result.Project.Files), uid)
	c.JSON(http.StatusOK, result.Project)
}

// statusForError maps the generation error taxonomy onto HTTP statuses the
// front-end distinguishes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, generate.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, credits.ErrInsufficientCredits), llm.IsPaymentRequired(err):
		return http.StatusPaymentRequired
	case llm.IsRateLimited(err):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// GET /api/credits
func (h *APIHandler) GetCredits(c *gin.Context) {
	acct, err := h.gate.Balance(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load credits"})
		return
	}
	c.JSON(http.StatusOK, acct)
}

// POST /api/websites
func (h *APIHandler) SaveWebsite(c *gin.Context) {
	var body struct {
		Name    string          `json:"name" binding:"required"`
		Prompt  string          `json:"prompt"`
		Project json.RawMessage `json:"project" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	project, err := generate.DecodeStructured(body.Project)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Project must contain a non-empty files array"})
		return
	}

	saved, err := h.projects.Save(userID(c), body.Name, body.Prompt, project)
	if err != nil {
		log.Printf("Error saving website: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save website"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// GET /api/websites
func (h *APIHandler) ListWebsites(c *gin.Context) {
	list, err := h.projects.ListByUser(userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list websites"})
		return
	}
	if list == nil {
		list = []*store.Website{}
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/websites/:id
func (h *APIHandler) GetWebsite(c *gin.Context) {
	w, err := h.projects.Get(userID(c), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// DELETE /api/websites/:id
func (h *APIHandler) DeleteWebsite(c *gin.Context) {
	if err := h.projects.Delete(userID(c), c.Param("id")); err != nil {
		h.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/websites/:id/share
func (h *APIHandler) ShareWebsite(c *gin.Context) {
	rec, err := h.projects.Share(userID(c), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GET /api/shared/:token
// Public: returns the saved project plus its assembled preview document.
func (h *APIHandler) GetSharedWebsite(c *gin.Context) {
	w, err := h.projects.GetShared(c.Param("token"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":    w.Name,
		"project": w.Project,
		"preview": preview.Assemble(w.Project),
	})
}

func (h *APIHandler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Website not found"})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Website belongs to another user"})
	default:
		log.Printf("Store error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage failure"})
	}
}
