package handler

import (
	"net/http"

	"nedpos/internal/dto"
	"nedpos/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Update godoc
// @Summary Save the store profile
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SettingsRequest true "Store profile"
// @Success 200 {object} model.StoreSettings
// @Failure 400 {object} apierror.APIError
// @Router /v1/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.SettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	s, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
