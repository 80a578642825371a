package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/domain/attachment"
	"github.com/linskybing/simtrack/pkg/response"
	"github.com/linskybing/simtrack/pkg/utils"
)

type AttachmentHandler struct {
	svc *application.AttachmentService
}

func NewAttachmentHandler(svc *application.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

// Upload godoc
// @Summary Attach a file to a request
// @Tags attachments
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Request ID"
// @Param file formData file true "File"
// @Success 201 {object} attachment.Attachment
// @Failure 400 {object} response.ErrorResponse
// @Failure 413 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Storage not configured"
// @Router /requests/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	requestID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	if config.MaxAttachmentSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxAttachmentSize+1<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "cannot read uploaded file"})
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	a, err := h.svc.Upload(c, requestID, fh.Filename, contentType, f, fh.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// List godoc
// @Summary List a request's attachments
// @Tags attachments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {array} attachment.Attachment
// @Router /requests/{id}/attachments [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	requestID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid request id"})
		return
	}
	list, err := h.svc.List(requestID)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []attachment.Attachment{}
	}
	c.JSON(http.StatusOK, list)
}

// Download godoc
// @Summary Download an attachment
// @Tags attachments
// @Security BearerAuth
// @Produce octet-stream
// @Param id path string true "Attachment ID"
// @Success 200 {file} file
// @Failure 404 {object} response.ErrorResponse
// @Router /attachments/{id} [get]
func (h *AttachmentHandler) Download(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid attachment id"})
		return
	}
	a, rc, err := h.svc.Open(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.FileName))
	c.DataFromReader(http.StatusOK, a.Size, a.ContentType, io.Reader(rc), nil)
}

// Delete godoc
// @Summary Delete an attachment
// @Tags attachments
// @Security BearerAuth
// @Param id path string true "Attachment ID"
// @Success 204 "No Content"
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid attachment id"})
		return
	}
	if err := h.svc.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
