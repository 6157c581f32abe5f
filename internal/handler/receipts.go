package handler

import (
	"net/http"

	"nedpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReceiptsHandler struct{ svc service.ReceiptService }

func NewReceiptsHandler(svc service.ReceiptService) *ReceiptsHandler {
	return &ReceiptsHandler{svc: svc}
}

// GetBySale godoc
// @Summary Receipt status of a sale
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param sale_id path string true "Sale ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/receipts/{sale_id} [get]
func (h *ReceiptsHandler) GetBySale(c *gin.Context) {
	id, ok := paramID(c, "sale_id")
	if !ok {
		return
	}
	resp, err := h.svc.GetBySale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadPDF godoc
// @Summary Download the receipt PDF
// @Tags receipts
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Receipt ID"
// @Success 200 {file} file
// @Failure 409 {object} apierror.APIError
// @Router /v1/receipts/pdf/{id} [get]
func (h *ReceiptsHandler) DownloadPDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.PDFPath(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}

// Retry resets the attempt budget of a failed receipt and queues it again.
func (h *ReceiptsHandler) Retry(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Retry(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
