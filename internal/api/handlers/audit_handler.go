package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/audit"
	"github.com/linskybing/simtrack/internal/repository"
	"github.com/linskybing/simtrack/pkg/response"
	"github.com/linskybing/simtrack/pkg/utils"
)

type AuditHandler struct {
	svc *application.AuditService
}

func NewAuditHandler(svc *application.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// GetAuditLogs godoc
// @Summary Query audit logs
// @Tags audit
// @Security BearerAuth
// @Produce json
// @Param user_id query int false "Actor user ID"
// @Param resource_type query string false "Resource type"
// @Param resource_id query string false "Resource ID"
// @Param action query string false "Action"
// @Param start_time query string false "RFC3339 lower bound"
// @Param end_time query string false "RFC3339 upper bound"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} audit.AuditLog
// @Failure 400 {object} response.ErrorResponse
// @Router /audit/logs [get]
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := repository.AuditQueryParams{
		Limit:  utils.QueryInt(c, "limit", 100),
		Offset: utils.QueryInt(c, "offset", 0),
	}
	if uid := utils.QueryInt(c, "user_id", 0); uid > 0 {
		v := uint(uid)
		params.UserID = &v
	}
	if v := c.Query("resource_type"); v != "" {
		params.ResourceType = &v
	}
	if v := c.Query("resource_id"); v != "" {
		params.ResourceID = &v
	}
	if v := c.Query("action"); v != "" {
		params.Action = &v
	}
	for name, dst := range map[string]**time.Time{"start_time": &params.StartTime, "end_time": &params.EndTime} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid " + name})
			return
		}
		*dst = &t
	}

	logs, err := h.svc.QueryAuditLogs(params)
	if err != nil {
		respondError(c, err)
		return
	}
	if logs == nil {
		logs = []audit.AuditLog{}
	}
	c.JSON(http.StatusOK, logs)
}
