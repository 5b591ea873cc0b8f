package handlers

import (
	"changelog-api/helper"
	"changelog-api/middleware"
	"changelog-api/models"
	"changelog-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChangeHandler struct {
	changeService services.ChangeService
	Helper        *helper.HTTPHelper
}

func NewChangeHandler(changeService services.ChangeService, httpHelper *helper.HTTPHelper) *ChangeHandler {
	return &ChangeHandler{changeService: changeService, Helper: httpHelper}
}

func (h *ChangeHandler) CreateChange(c *gin.Context) {
	var req models.CreateChangeRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	change, err := h.changeService.CreateChange(middleware.ProjectID(c), c.Param("number"), req.Kind, req.Body, req.Author)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, "change created", change)
}

func (h *ChangeHandler) GetChanges(c *gin.Context) {
	changes, err := h.changeService.ReadChangesForVersion(middleware.ProjectID(c), c.Param("number"))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "changes loaded", changes)
}

func (h *ChangeHandler) DeleteChange(c *gin.Context) {
	changeID, err := uuid.Parse(c.Param("change_id"))
	if err != nil {
		h.Helper.SendError(c, models.ErrChangeIDInvalid)
		return
	}

	change, err := h.changeService.DeleteChange(middleware.ProjectID(c), c.Param("number"), changeID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "change deleted", change)
}

func (h *ChangeHandler) MoveChange(c *gin.Context) {
	changeID, err := uuid.Parse(c.Param("change_id"))
	if err != nil {
		h.Helper.SendError(c, models.ErrChangeIDInvalid)
		return
	}

	var req models.MoveChangeRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	change, err := h.changeService.MoveChangeToOtherVersion(middleware.ProjectID(c), c.Param("number"), req.VersionNumber, changeID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "change moved", change)
}
