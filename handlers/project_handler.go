package handlers

import (
	"changelog-api/helper"
	"changelog-api/middleware"
	"changelog-api/models"
	"changelog-api/services"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"
)

type ProjectHandler struct {
	projectService services.ProjectService
	Helper         *helper.HTTPHelper
}

func NewProjectHandler(projectService services.ProjectService, httpHelper *helper.HTTPHelper) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, Helper: httpHelper}
}

func (h *ProjectHandler) Register(c *gin.Context) {
	var req models.RegisterProjectRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	response, err := h.projectService.Register(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "project registered", response)
}

func (h *ProjectHandler) Login(c *gin.Context) {
	var req models.LoginProjectRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	response, err := h.projectService.Login(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "login success", response)
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.projectService.GetProject(middleware.ProjectID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "project loaded", project)
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	if err := h.projectService.DeleteProject(middleware.ProjectID(c)); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "project deleted", h.Helper.EmptyJsonMap())
}

// bindJSON decodes and validates a request body, writing the error response
// itself when it returns false.
func bindJSON(c *gin.Context, httpHelper *helper.HTTPHelper, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpHelper.SendBadRequest(c, "request body must be valid JSON")
		return false
	}

	if err := httpHelper.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			httpHelper.SendValidationError(c, validationErrors)
			return false
		}
		httpHelper.SendBadRequest(c, err.Error())
		return false
	}

	return true
}
