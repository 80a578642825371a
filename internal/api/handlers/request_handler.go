package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/request"
	"github.com/linskybing/simtrack/internal/domain/user"
	"github.com/linskybing/simtrack/pkg/response"
	"github.com/linskybing/simtrack/pkg/utils"
)

type RequestHandler struct {
	svc *application.RequestService
}

func NewRequestHandler(svc *application.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

// ListRequests godoc
// @Summary List simulation requests
// @Description Requesters only see their own requests.
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param project_id query string false "Project ID"
// @Param engineer_id query int false "Assigned engineer"
// @Param status query string false "Status"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset"
// @Success 200 {object} response.Page[request.Request]
// @Failure 400 {object} response.ErrorResponse
// @Router /requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	filter := request.Filter{
		Limit:  utils.QueryInt(c, "limit", 50),
		Offset: utils.QueryInt(c, "offset", 0),
	}
	if pid := c.Query("project_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project_id"})
			return
		}
		filter.ProjectID = &id
	}
	if eng := utils.QueryInt(c, "engineer_id", 0); eng > 0 {
		uid := uint(eng)
		filter.EngineerID = &uid
	}
	if s := c.Query("status"); s != "" {
		if !request.IsValidStatus(s) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid status"})
			return
		}
		status := request.Status(s)
		filter.Status = &status
	}

	items, total, err := h.svc.ListRequests(c, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []request.Request{}
	}
	c.JSON(http.StatusOK, response.Page[request.Request]{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// GetRequest godoc
// @Summary Get a request
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} request.Request
// @Failure 404 {object} response.ErrorResponse
// @Router /requests/{id} [get]
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	req, err := h.svc.GetRequest(id)
	if err != nil {
		respondError(c, err)
		return
	}
	claims, err := utils.GetClaims(c)
	if err != nil {
		respondError(c, application.ErrUnauthenticated)
		return
	}
	if claims.Role == user.RoleRequester && req.RequesterID != claims.UserID {
		respondError(c, application.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, req)
}

// CreateRequest godoc
// @Summary Submit a simulation request
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body request.CreateRequestDTO true "Request"
// @Success 201 {object} request.Request
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Project not found"
// @Router /requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var input request.CreateRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	req, err := h.svc.CreateRequest(c, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// UpdateStatus godoc
// @Summary Move a request to a new status
// @Description Denied returns the request's hours and Completed settles them against logged time.
// @Description A failed settlement does not block the status change; it is reported in hours_warning.
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param input body request.UpdateStatusDTO true "New status"
// @Success 200 {object} application.StatusUpdateResult
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	var input request.UpdateStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.svc.UpdateRequestStatus(c, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AssignEngineer godoc
// @Summary Assign an engineer and set the estimate
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param input body request.AssignEngineerDTO true "Assignment"
// @Success 200 {object} request.Request
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.LedgerErrorResponse "Not enough hours"
// @Router /requests/{id}/assign [post]
func (h *RequestHandler) AssignEngineer(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	var input request.AssignEngineerDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	req, err := h.svc.AssignEngineer(c, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// LogTime godoc
// @Summary Log hours worked on a request
// @Tags requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param input body request.LogTimeDTO true "Time entry"
// @Success 201 {object} request.TimeEntry
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /requests/{id}/time-entries [post]
func (h *RequestHandler) LogTime(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	var input request.LogTimeDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.svc.LogTime(c, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListTimeEntries godoc
// @Summary List time logged on a request
// @Tags requests
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {array} request.TimeEntry
// @Failure 404 {object} response.ErrorResponse
// @Router /requests/{id}/time-entries [get]
func (h *RequestHandler) ListTimeEntries(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	entries, err := h.svc.ListTimeEntries(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if entries == nil {
		entries = []request.TimeEntry{}
	}
	c.JSON(http.StatusOK, entries)
}
