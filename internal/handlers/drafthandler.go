package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtracker-app/jobtracker/internal/dtos"
	"github.com/jobtracker-app/jobtracker/internal/services"
)

// DraftHandler exposes the form controller: the browser form is a thin client
// over these endpoints.
type DraftHandler struct {
	Form *services.FormService
}

func NewDraftHandler(form *services.FormService) *DraftHandler {
	return &DraftHandler{Form: form}
}

// GetDraft is GET /draft
func (h *DraftHandler) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.Form.Draft())
}

// PutDraft is PUT /draft: replaces the draft's field values with the form's
// current state.
func (h *DraftHandler) PutDraft(c *gin.Context) {
	var req dtos.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Form.SetFields(req.Draft()))
}

// StartEdit is POST /draft/edit/:id: copies the record into the draft and
// switches to editing mode.
func (h *DraftHandler) StartEdit(c *gin.Context) {
	draft, err := h.Form.StartEdit(c.Param("id"))
	if err != nil {
		respondRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ResetDraft is POST /draft/reset: cancel-edit / clear form.
func (h *DraftHandler) ResetDraft(c *gin.Context) {
	h.Form.Reset()
	c.JSON(http.StatusOK, h.Form.Draft())
}

// SubmitDraft is POST /draft/submit: validates and dispatches create or
// update per the current mode.
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	wasEditing := h.Form.Draft().Editing()

	app, err := h.Form.Submit(c.Request.Context())
	if err != nil {
		respondRecordError(c, err)
		return
	}

	status := http.StatusCreated
	if wasEditing {
		status = http.StatusOK
	}
	c.JSON(status, app)
}
