package handler

import (
	"net/http"
	"path/filepath"

	"nedpos/internal/dto"
	"nedpos/internal/service"

	"github.com/gin-gonic/gin"
)

type RepairsHandler struct{ svc service.RepairService }

func NewRepairsHandler(svc service.RepairService) *RepairsHandler {
	return &RepairsHandler{svc: svc}
}

func (h *RepairsHandler) Create(c *gin.Context) {
	var req dto.CreateRepairRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *RepairsHandler) List(c *gin.Context) {
	var filter dto.RepairFilter
	if !bindQuery(c, &filter) {
		return
	}
	list, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Advance godoc
// @Summary Move a repair to its next status
// @Description PENDING → IN_PROGRESS → READY → COMPLETED, one step at a time.
// @Tags repairs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Repair ID"
// @Param body body dto.RepairStatusRequest true "Target status"
// @Success 200 {object} model.Repair
// @Failure 409 {object} apierror.APIError
// @Router /v1/repairs/{id}/status [patch]
func (h *RepairsHandler) Advance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.RepairStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	r, err := h.svc.Advance(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RepairsHandler) Ticket(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.TicketPath(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
