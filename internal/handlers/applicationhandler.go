package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtracker-app/jobtracker/internal/dtos"
	"github.com/jobtracker-app/jobtracker/internal/services"
)

// Dependency injection: the handler holds the services it dispatches into.
type ApplicationHandler struct {
	Records *services.RecordService
}

func NewApplicationHandler(records *services.RecordService) *ApplicationHandler {
	return &ApplicationHandler{Records: records}
}

// ListApplications is GET /applications?status=...
// Returns the filtered, date-sorted view.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	filter := c.DefaultQuery("status", services.FilterAll)
	if !services.ValidFilter(filter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter: " + filter})
		return
	}

	apps := services.Sorted(services.Filtered(h.Records.List(), filter))
	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"count":        len(apps),
	})
}

// GetStats is GET /applications/stats. Counters always cover the full
// collection, not the filtered view.
func (h *ApplicationHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, services.ComputeStats(h.Records.List()))
}

// CreateApplication is POST /applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.Records.Create(c.Request.Context(), req.Draft())
	if err != nil {
		respondRecordError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// UpdateApplication is PUT /applications/:id
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	var req dtos.ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.Records.Update(c.Request.Context(), c.Param("id"), req.Draft())
	if err != nil {
		respondRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// DeleteApplication is DELETE /applications/:id?confirm=true. The confirm
// flag is the upfront confirmation gate; without it nothing changes.
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	if err := h.Records.Delete(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		respondRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// ClearApplications is DELETE /applications?confirm=true
func (h *ApplicationHandler) ClearApplications(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	if err := h.Records.ClearAll(c.Request.Context(), confirmed); err != nil {
		respondRecordError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// respondRecordError maps service failures onto HTTP statuses.
func respondRecordError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist applications: " + err.Error()})
	}
}
