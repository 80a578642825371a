package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/pkg/response"
	"github.com/linskybing/simtrack/pkg/utils"
	"github.com/shopspring/decimal"
)

// HoursHandler exposes the read side of the hour ledger.
type HoursHandler struct {
	svc      *application.HourService
	requests *application.RequestService
}

func NewHoursHandler(svc *application.HourService, requests *application.RequestService) *HoursHandler {
	return &HoursHandler{svc: svc, requests: requests}
}

// GetHistory godoc
// @Summary Project hour ledger, newest first
// @Tags hours
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {object} hours.History
// @Failure 404 {object} response.LedgerErrorResponse
// @Router /projects/{id}/hours/history [get]
func (h *HoursHandler) GetHistory(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}

	history, err := h.svc.GetProjectHourHistory(c.Request.Context(), id,
		utils.QueryInt(c, "limit", 0), utils.QueryInt(c, "offset", 0))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetSummary godoc
// @Summary Project budget with totals per transaction type
// @Tags hours
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} hours.Summary
// @Failure 404 {object} response.LedgerErrorResponse
// @Router /projects/{id}/hours/summary [get]
func (h *HoursHandler) GetSummary(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}

	summary, err := h.svc.GetProjectHourSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CheckAvailability godoc
// @Summary Check whether a project can absorb more hours
// @Tags hours
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Param hours query number true "Hours needed"
// @Success 200 {object} hours.Availability
// @Failure 400 {object} response.ErrorResponse
// @Router /projects/{id}/hours/availability [get]
func (h *HoursHandler) CheckAvailability(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}
	needed, err := decimal.NewFromString(c.Query("hours"))
	if err != nil || needed.IsNegative() {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "hours must be a non-negative number"})
		return
	}

	av, err := h.svc.ValidateHourAvailability(c.Request.Context(), id, needed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, av)
}

// Reconcile godoc
// @Summary Replay the project ledger and compare with cached used hours
// @Tags hours
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} hours.Reconciliation
// @Failure 404 {object} response.LedgerErrorResponse
// @Router /projects/{id}/hours/reconcile [get]
func (h *HoursHandler) Reconcile(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}

	rec, err := h.svc.ReconcileProject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ReconcileAll godoc
// @Summary Reconcile every project
// @Tags hours
// @Security BearerAuth
// @Produce json
// @Success 200 {array} hours.Reconciliation
// @Router /admin/hours/reconcile [get]
func (h *HoursHandler) ReconcileAll(c *gin.Context) {
	recs, err := h.svc.ReconcileAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// GetRequestHours godoc
// @Summary Net hours the ledger holds for a request
// @Tags hours
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorResponse
// @Router /requests/{id}/hours [get]
func (h *HoursHandler) GetRequestHours(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	req, err := h.requests.GetRequest(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.ProjectID == nil {
		c.JSON(http.StatusOK, gin.H{"request_id": req.ID, "allocated_hours": decimal.Zero})
		return
	}

	total, err := h.svc.GetRequestAllocatedHours(c.Request.Context(), *req.ProjectID, req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"request_id":      req.ID,
		"project_id":      req.ProjectID,
		"allocated_hours": total,
		"cached_hours":    req.AllocatedHours,
	})
}
