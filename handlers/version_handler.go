package handlers

import (
	"changelog-api/config"
	"changelog-api/helper"
	"changelog-api/middleware"
	"changelog-api/models"
	"changelog-api/services"

	"github.com/gin-gonic/gin"
)

type VersionHandler struct {
	versionService services.VersionService
	pagination     config.PaginationConfig
	Helper         *helper.HTTPHelper
}

func NewVersionHandler(versionService services.VersionService, pagination config.PaginationConfig, httpHelper *helper.HTTPHelper) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		pagination:     pagination,
		Helper:         httpHelper,
	}
}

func (h *VersionHandler) CreateVersion(c *gin.Context) {
	var req models.CreateVersionRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	version, err := h.versionService.CreateVersion(middleware.ProjectID(c), req.VersionNumber)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "version created", version)
}

func (h *VersionHandler) GetVersions(c *gin.Context) {
	var params models.VersionListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendError(c, models.ErrPageSizeInvalid)
		return
	}

	// Set defaults
	pageSize := h.pagination.DefaultPageSize
	if params.PageSize != nil {
		pageSize = *params.PageSize
	}
	if pageSize > h.pagination.MaxPageSize {
		pageSize = h.pagination.MaxPageSize
	}

	token := params.PageToken
	if token != nil && *token == "" {
		token = nil
	}

	page, err := h.versionService.ReadVersions(middleware.ProjectID(c), pageSize, token)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "versions loaded", gin.H{
		"versions":       page.Versions,
		"previous_token": page.PreviousToken,
		"next_token":     page.NextToken,
		"links":          h.Helper.GeneratePaging(c, page.PreviousToken, page.NextToken, pageSize),
	})
}

func (h *VersionHandler) DeleteVersion(c *gin.Context) {
	version, err := h.versionService.DeleteVersion(middleware.ProjectID(c), c.Param("number"))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "version deleted", version)
}

func (h *VersionHandler) ReleaseVersion(c *gin.Context) {
	var req models.ReleaseVersionRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}
	if req.ReleasedAt == nil {
		h.Helper.SendMissingError(c, "released at missing")
		return
	}

	version, err := h.versionService.ReleaseVersion(middleware.ProjectID(c), c.Param("number"), *req.ReleasedAt)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "version released", version)
}
