package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/discussion"
	"github.com/linskybing/simtrack/pkg/response"
	"github.com/linskybing/simtrack/pkg/utils"
)

type DiscussionHandler struct {
	svc *application.DiscussionService
}

func NewDiscussionHandler(svc *application.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{svc: svc}
}

// CreateDiscussion godoc
// @Summary Open a discussion on a request's hours
// @Tags discussions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param input body discussion.CreateDiscussionDTO true "Discussion"
// @Success 201 {object} discussion.Request
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Already pending"
// @Router /requests/{id}/discussions [post]
func (h *DiscussionHandler) CreateDiscussion(c *gin.Context) {
	requestID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	var input discussion.CreateDiscussionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	d, err := h.svc.CreateDiscussionRequest(c, requestID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// ListByRequest godoc
// @Summary List discussions of a request
// @Tags discussions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {array} discussion.Request
// @Router /requests/{id}/discussions [get]
func (h *DiscussionHandler) ListByRequest(c *gin.Context) {
	requestID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	list, err := h.svc.ListByRequest(requestID)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []discussion.Request{}
	}
	c.JSON(http.StatusOK, list)
}

// ListPending godoc
// @Summary List discussions waiting for review
// @Tags discussions
// @Security BearerAuth
// @Produce json
// @Success 200 {array} discussion.Request
// @Router /discussions/pending [get]
func (h *DiscussionHandler) ListPending(c *gin.Context) {
	list, err := h.svc.ListPending()
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []discussion.Request{}
	}
	c.JSON(http.StatusOK, list)
}

// GetDiscussion godoc
// @Summary Get a discussion
// @Tags discussions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Discussion ID"
// @Success 200 {object} discussion.Request
// @Failure 404 {object} response.ErrorResponse
// @Router /discussions/{id} [get]
func (h *DiscussionHandler) GetDiscussion(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid discussion id"})
		return
	}
	d, err := h.svc.GetDiscussion(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ReviewDiscussion godoc
// @Summary Approve, deny or override a discussion
// @Description Any hour ledger failure rolls back the whole review.
// @Tags discussions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Discussion ID"
// @Param input body discussion.ReviewDiscussionDTO true "Decision"
// @Success 200 {object} discussion.Request
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.LedgerErrorResponse
// @Router /discussions/{id}/review [post]
func (h *DiscussionHandler) ReviewDiscussion(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid discussion id"})
		return
	}
	var input discussion.ReviewDiscussionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	d, err := h.svc.ReviewDiscussionRequest(c, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
