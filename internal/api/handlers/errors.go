package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/hours"
	"github.com/linskybing/simtrack/pkg/response"
)

var statusBySentinel = []struct {
	err    error
	status int
}{
	{application.ErrUnauthenticated, http.StatusUnauthorized},
	{application.ErrInvalidCredentials, http.StatusUnauthorized},
	{application.ErrMissingOldPassword, http.StatusUnauthorized},
	{application.ErrIncorrectPassword, http.StatusUnauthorized},
	{application.ErrForbidden, http.StatusForbidden},

	{application.ErrProjectNotFound, http.StatusNotFound},
	{application.ErrRequestNotFound, http.StatusNotFound},
	{application.ErrDiscussionNotFound, http.StatusNotFound},
	{application.ErrUserNotFound, http.StatusNotFound},
	{application.ErrEngineerNotFound, http.StatusNotFound},
	{application.ErrAttachmentNotFound, http.StatusNotFound},
	{application.ErrNotificationNotFound, http.StatusNotFound},

	{application.ErrUsernameTaken, http.StatusConflict},
	{application.ErrInvalidTransition, http.StatusConflict},
	{application.ErrProjectInUse, http.StatusConflict},
	{application.ErrRequestClosed, http.StatusConflict},
	{application.ErrDiscussionPending, http.StatusConflict},
	{application.ErrDiscussionNotPending, http.StatusConflict},
	{application.ErrLastAdmin, http.StatusConflict},

	{application.ErrAttachmentTooLarge, http.StatusRequestEntityTooLarge},
	{application.ErrStorageUnavailable, http.StatusServiceUnavailable},

	{application.ErrProjectNameRequired, http.StatusBadRequest},
	{application.ErrInvalidProjectStatus, http.StatusBadRequest},
	{application.ErrInvalidDateRange, http.StatusBadRequest},
	{application.ErrInvalidRequestStatus, http.StatusBadRequest},
	{application.ErrInvalidPriority, http.StatusBadRequest},
	{application.ErrInvalidHours, http.StatusBadRequest},
	{application.ErrNegativeHours, http.StatusBadRequest},
	{application.ErrHoursPrecision, http.StatusBadRequest},
	{application.ErrNotAnEngineer, http.StatusBadRequest},
	{application.ErrInvalidReviewAction, http.StatusBadRequest},
	{application.ErrOverrideHoursRequired, http.StatusBadRequest},
	{application.ErrInvalidRole, http.StatusBadRequest},
	{application.ErrEmptyAttachment, http.StatusBadRequest},
}

// ledgerStatus maps hour ledger codes onto HTTP statuses.
func ledgerStatus(code hours.ErrorCode) int {
	switch code {
	case hours.CodeInvalidArgument:
		return http.StatusBadRequest
	case hours.CodeProjectNotFound:
		return http.StatusNotFound
	case hours.CodeInvalidState, hours.CodeInsufficientHours, hours.CodeOverDeallocation:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes the response for an error returned by a service.
func respondError(c *gin.Context, err error) {
	var le *hours.LedgerError
	if errors.As(err, &le) {
		c.JSON(ledgerStatus(le.Code), response.LedgerErrorResponse{
			Error:          le.Message,
			Code:           le.Code,
			AvailableHours: le.AvailableHours,
			UsedHours:      le.UsedHours,
		})
		return
	}

	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			c.JSON(s.status, response.ErrorResponse{Error: err.Error()})
			return
		}
	}

	log.Printf("[API] %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal server error"})
}

// bindError turns a binding failure into a readable 400.
func bindError(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	msgs := make([]string, 0, len(verr))
	for _, fe := range verr {
		lbl := strings.ToLower(fe.StructField())

		var msg string
		switch fe.Tag() {
		case "required":
			msg = fmt.Sprintf("%s is required", lbl)
		case "min":
			msg = fmt.Sprintf("%s must be at least %s characters", lbl, fe.Param())
		case "max":
			msg = fmt.Sprintf("%s must be at most %s characters", lbl, fe.Param())
		case "email":
			msg = fmt.Sprintf("%s must be a valid email address", lbl)
		case "oneof":
			msg = fmt.Sprintf("%s must be one of [%s]", lbl, fe.Param())
		default:
			msg = fmt.Sprintf("%s is invalid", lbl)
		}
		msgs = append(msgs, msg)
	}
	c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: strings.Join(msgs, "; ")})
}
