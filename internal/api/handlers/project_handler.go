package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/simtrack/internal/application"
	"github.com/linskybing/simtrack/internal/domain/project"
	"github.com/linskybing/simtrack/pkg/response"
	"github.com/linskybing/simtrack/pkg/utils"
)

type ProjectHandler struct {
	svc *application.ProjectService
}

func NewProjectHandler(svc *application.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// GetProjects godoc
// @Summary List projects
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param status query string false "Project status"
// @Param owner_id query int false "Owner user ID"
// @Param search query string false "Name or code contains"
// @Success 200 {array} project.Project
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	filter := project.ProjectFilter{Search: c.Query("search")}
	if s := c.Query("status"); s != "" {
		if !project.IsValidStatus(s) {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid status"})
			return
		}
		status := project.Status(s)
		filter.Status = &status
	}
	if owner := utils.QueryInt(c, "owner_id", 0); owner > 0 {
		uid := uint(owner)
		filter.OwnerID = &uid
	}

	projects, err := h.svc.ListProjects(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// GetProjectByID godoc
// @Summary Get project by ID
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} project.Project
// @Failure 400 {object} response.ErrorResponse "Invalid project id"
// @Failure 404 {object} response.ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}
	p, err := h.svc.GetProject(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProject godoc
// @Summary Create a new project
// @Description Managers create Active projects; other roles create Pending ones.
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body project.CreateProjectDTO true "Project"
// @Success 201 {object} project.Project
// @Failure 400 {object} response.ErrorResponse "Bad request"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input project.CreateProjectDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.svc.CreateProject(c, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProject godoc
// @Summary Update project details
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param input body project.UpdateProjectDTO true "Fields to change"
// @Success 200 {object} project.Project
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}
	var input project.UpdateProjectDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.svc.UpdateProject(c, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProjectStatus godoc
// @Summary Change project status
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param input body project.UpdateProjectStatusDTO true "New status"
// @Success 200 {object} project.Project
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Transition not allowed"
// @Router /projects/{id}/status [patch]
func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}
	var input project.UpdateProjectStatusDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.svc.UpdateProjectStatus(c, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject godoc
// @Summary Delete a project without requests or hour history
// @Tags projects
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Project in use"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}
	if err := h.svc.DeleteProject(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExtendHours godoc
// @Summary Raise the project's total hours
// @Tags hours
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param input body project.ExtendHoursDTO true "Additional hours"
// @Success 200 {object} hours.Result
// @Failure 400 {object} response.LedgerErrorResponse
// @Failure 404 {object} response.LedgerErrorResponse
// @Router /projects/{id}/hours/extend [post]
func (h *ProjectHandler) ExtendHours(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}
	var input project.ExtendHoursDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.svc.ExtendHours(c, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AdjustHours godoc
// @Summary Apply a manual correction to used hours
// @Tags hours
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param input body project.AdjustHoursDTO true "Signed correction"
// @Success 200 {object} hours.Result
// @Failure 400 {object} response.LedgerErrorResponse
// @Failure 409 {object} response.LedgerErrorResponse
// @Router /projects/{id}/hours/adjust [post]
func (h *ProjectHandler) AdjustHours(c *gin.Context) {
	id, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid project id"})
		return
	}
	var input project.AdjustHoursDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.svc.AdjustHours(c, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
